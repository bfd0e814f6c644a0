package text_test

import (
	"fmt"
	"strings"

	"github.com/walteh/repren/pkg/text"
)

func ExamplePatternSet_Replace() {
	// Swap two identifiers in one pass
	patterns, err := text.Compile([]text.Pair{
		{From: "humpty", To: "dumpty"},
		{From: "dumpty", To: "humpty"},
	}, text.Flags{WordBreaks: true})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	res, err := patterns.Replace([]byte("humpty sat on dumpty"), text.LineMode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", res.Content)
	fmt.Printf("Changes: %d\n", res.Count)

	// Output:
	// Modified: dumpty sat on humpty
	// Changes: 2
}

func ExampleParsePatterns() {
	pairs, err := text.ParsePatterns(strings.NewReader("# rename figures\nfigure ([0-9]+)\tFigure \\1\n"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	patterns := text.MustCompile(pairs, text.Flags{})
	res, _ := patterns.Replace([]byte("See figure 1 and figure 23."), text.LineMode)
	fmt.Println(string(res.Content))

	// Output:
	// See Figure 1 and Figure 23.
}

func ExampleCompile_preserveCase() {
	patterns := text.MustCompile([]text.Pair{
		{From: "old_name", To: "new_name"},
	}, text.Flags{PreserveCase: true})

	for _, p := range patterns.Patterns() {
		fmt.Println(p)
	}

	// Output:
	// oldName -> newName
	// OldName -> NewName
	// old_name -> new_name
	// OLD_NAME -> NEW_NAME
}
