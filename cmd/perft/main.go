// Command perft counts the legal move tree of a position and optionally
// checks the count against an independent move generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/benbeisheim/chess-rules/internal/model"
	"github.com/dylhunn/dragontoothmg"
	"github.com/montanaflynn/stats"
)

func main() {
	fen := flag.String("fen", model.StartFEN, "position to count from")
	depth := flag.Int("depth", 4, "plies to search")
	divide := flag.Bool("divide", false, "print the node count below every root move")
	verify := flag.Bool("verify", false, "compare against dragontoothmg")
	summary := flag.Bool("stats", false, "print branching statistics")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.SetHandler(text.New(os.Stderr))
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *depth < 1 {
		log.WithField("depth", *depth).Fatal("depth must be positive")
	}
	board, turn, err := model.ParseFEN(*fen)
	if err != nil {
		log.WithError(err).Fatal("failed to parse position")
	}

	start := time.Now()
	entries := model.PerftDivide(board, turn, *depth)
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	log.WithFields(log.Fields{
		"depth":    *depth,
		"nodes":    total,
		"duration": time.Since(start).String(),
	}).Debug("perft done")

	if *divide {
		sort.Slice(entries, func(i, j int) bool { return entries[i].String() < entries[j].String() })
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e, e.Nodes)
		}
		fmt.Println()
	}
	fmt.Printf("Nodes searched: %d\n", total)

	if *summary {
		printStats(board, turn, *depth, entries)
	}

	if *verify {
		if !verifyDivide(*fen, *depth, entries) {
			os.Exit(1)
		}
		fmt.Println("Verified against dragontoothmg")
	}
}

// printStats reports the effective branching factor per ply and the spread
// of subtree sizes below the root moves.
func printStats(board *model.Board, turn model.Color, depth int, entries []model.PerftEntry) {
	var factors stats.Float64Data
	prev := model.Perft(board, turn, 0)
	for d := 1; d <= depth; d++ {
		nodes := model.Perft(board, turn, d)
		if prev > 0 {
			factors = append(factors, float64(nodes)/float64(prev))
		}
		prev = nodes
	}

	subtrees := make(stats.Float64Data, 0, len(entries))
	for _, e := range entries {
		subtrees = append(subtrees, float64(e.Nodes))
	}

	mean, _ := factors.Mean()
	peak, _ := factors.Max()
	fmt.Printf("Branching factor: mean %.2f, max %.2f\n", mean, peak)

	if len(subtrees) == 0 {
		return
	}
	median, _ := subtrees.Median()
	sd, _ := subtrees.StandardDeviation()
	biggest, _ := subtrees.Max()
	fmt.Printf("Root subtrees: %d moves, median %.0f, stddev %.1f, largest %.0f\n", len(subtrees), median, sd, biggest)
}

func verifyDivide(fen string, depth int, entries []model.PerftEntry) bool {
	ref := dragontoothmg.ParseFen(fen)
	want := map[string]uint64{}
	for _, m := range ref.GenerateLegalMoves() {
		unapply := ref.Apply(m)
		want[m.String()] = referencePerft(&ref, depth-1)
		unapply()
	}

	got := map[string]uint64{}
	for _, e := range entries {
		got[e.String()] = e.Nodes
	}

	ok := true
	for move, n := range want {
		if got[move] != n {
			log.WithFields(log.Fields{"move": move, "want": n, "got": got[move]}).Error("subtree mismatch")
			ok = false
		}
	}
	for move := range got {
		if _, exists := want[move]; !exists {
			log.WithField("move", move).Error("move unknown to dragontoothmg")
			ok = false
		}
	}
	return ok
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		unapply()
	}
	return nodes
}
