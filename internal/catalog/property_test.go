package catalog_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/internal/testutil"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type widget interface{ ID() int }

type widgetImpl int

func (w widgetImpl) ID() int { return int(w) }

const sigWidget catalog.Signature = "SignatureWidget"

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func widgetDecl(id int, names []string) catalog.Declaration {
	return catalog.Declaration{
		Component:  catalog.TypeOf[widget](),
		Signatures: []catalog.Signature{sigWidget},
		LoadNames:  names,
		New:        func() widget { return widgetImpl(id) },
	}
}

// TestFirstRegistrationWins registers random modules whose aliases overlap
// and checks every alias resolves to the first declaration that used it,
// under any casing.
func TestFirstRegistrationWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := catalog.New(catalog.WithLogger(discard()))
		owner := map[string]int{}

		numModules := rapid.IntRange(1, 6).Draw(rt, "numModules")
		id := 0
		for m := 0; m < numModules; m++ {
			numDecls := rapid.IntRange(1, 4).Draw(rt, "numDecls")
			decls := make([]catalog.Declaration, 0, numDecls)
			for i := 0; i < numDecls; i++ {
				names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-d]{1,2}`), 1, 3, strings.ToLower).Draw(rt, "names")
				for _, n := range names {
					if _, taken := owner[n]; !taken {
						owner[n] = id
					}
				}
				decls = append(decls, widgetDecl(id, names))
				id++
			}
			require.NoError(rt, c.RegisterModule(&testutil.SimpleModule{ID: fmt.Sprintf("m%d", m), Decls: decls}))
		}

		require.Len(rt, c.GetAllComponents(), id, "every declaration stays enumerable")
		names := make([]string, 0, len(owner))
		for name := range owner {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			want := owner[name]
			lookup := name
			if rapid.Bool().Draw(rt, "upper") {
				lookup = " " + strings.ToUpper(name) + " "
			}
			w, err := catalog.Create[widget](context.Background(), c, sigWidget, lookup, "")
			require.NoError(rt, err)
			require.Equal(rt, want, w.ID(), "alias %q", name)
		}
	})
}

// TestLookupsAreMonotonic checks that a key, once resolved, keeps resolving to
// the same descriptor however many modules are added later.
func TestLookupsAreMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := catalog.New(catalog.WithLogger(discard()))
		seen := map[string]*catalog.Descriptor{}

		steps := rapid.IntRange(1, 10).Draw(rt, "steps")
		for s := 0; s < steps; s++ {
			names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-c]`), 1, 2, rapid.ID[string]).Draw(rt, "names")
			_ = c.RegisterModule(&testutil.SimpleModule{ID: fmt.Sprintf("step%d", s), Decls: []catalog.Declaration{widgetDecl(s, names)}})

			for name, d := range seen {
				got, ok := c.FindComponent(name, sigWidget)
				require.True(rt, ok)
				require.Same(rt, d, got)
			}
			for _, n := range names {
				if _, ok := seen[n]; !ok {
					d, found := c.FindComponent(n, sigWidget)
					require.True(rt, found)
					seen[n] = d
				}
			}
		}
	})
}
