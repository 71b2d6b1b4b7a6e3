// debug-doc cross-checks a project file with an independent s-expression
// parser and dumps the node structure. Useful when the project loader
// rejects a file and the question is whether the file or the loader is at
// fault.
package main

import (
	"fmt"
	"os"

	chewxy "github.com/chewxy/sexp"

	"github.com/jeffwheeler/LibrePCB/pkg/sexp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-doc <project_file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	file, err := os.Open(filename)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	info, _ := file.Stat()
	fmt.Printf("File size: %d bytes\n", info.Size())

	// First opinion: the independent parser
	fmt.Println("\nCross-check with chewxy/sexp...")
	sexps, err := chewxy.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		fmt.Printf("  Parsed %d s-expressions\n", len(sexps))
		for i, s := range sexps {
			if i >= 3 {
				break
			}
			fmt.Printf("  #%d leaf: %v\n", i+1, s.IsLeaf())
			if !s.IsLeaf() {
				fmt.Printf("  #%d leaf count: %d\n", i+1, s.LeafCount())
			}
		}
	}

	// Second opinion: our own parser, with structure dump
	fmt.Println("\nParse with project parser...")
	file.Seek(0, 0)
	nodes, err := sexp.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Parsed %d s-expressions\n", len(nodes))

	for _, node := range nodes {
		list, ok := node.(*sexp.List)
		if !ok {
			fmt.Printf("  top-level atom: %s\n", node.String())
			continue
		}
		dump(list, 1)
	}
}

// dump prints the node tree down to three levels, with child counts.
func dump(l *sexp.List, depth int) {
	if depth > 3 {
		return
	}
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s(%s: %d children)\n", indent, l.Name(), l.Len()-1)
	for _, item := range l.Items() {
		if sub, ok := item.(*sexp.List); ok {
			dump(sub, depth+1)
		}
	}
}
