// Package main provides the trickle CLI application.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mirrorbrook/trickle/pkg/dot"
	"github.com/mirrorbrook/trickle/pkg/trickle"
)

// Version information set during build.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("trickle %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		return
	}

	fmt.Println("🔀 trickle - asynchronous dataflow graph execution")
	fmt.Println()
	fmt.Println(demoDOT())
}

// demoDOT builds a small three-node graph (two independent fetches feeding a
// combiner) and renders it as Graphviz DOT, giving `trickle` output without
// requiring any external input.
func demoDOT() string {
	b := trickle.NewGraph()

	left := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
		return trickle.Immediate(21)
	})).Named("left")

	right := trickle.Call0(b, trickle.Node0[int](func() trickle.Future[int] {
		return trickle.Immediate(21)
	})).Named("right")

	sum := trickle.Call2(b,
		trickle.Node2[int, int, int](func(a, c int) trickle.Future[int] {
			return trickle.Immediate(a + c)
		}),
		trickle.Ref[int](left),
		trickle.Ref[int](right),
	).Named("sum")

	g, err := sum.Build()
	if err != nil {
		log.Printf("error building demo graph: %v", err)
		return fmt.Sprintf("error building demo graph: %v", err)
	}

	out, err := trickle.Run(context.Background(), g, trickle.RunOptions{})
	if err != nil {
		log.Printf("error running demo graph: %v", err)
		return fmt.Sprintf("error running demo graph: %v", err)
	}

	return fmt.Sprintf("demo result: %d\n\n%s", out, dot.Write(g.Sink()))
}
