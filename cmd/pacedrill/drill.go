package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func (a *app) drillCmd() *cobra.Command {
	var rounds int
	cmd := &cobra.Command{
		Use:   "drill <item>...",
		Short: "Run a practice session over the given items",
		Long: `Runs a timed practice session. Each round shows one item; press Enter
the moment you have produced the answer, then grade yourself y/n.
Type q instead of Enter to stop early.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDrill(args, rounds)
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 20, "number of prompts in the session")
	return cmd
}

func (a *app) runDrill(items []string, rounds int) error {
	in := bufio.NewReader(os.Stdin)
	fmt.Println("Press Enter as soon as you have the answer, then grade yourself y/n. q quits.")

	for i := 0; i < rounds; i++ {
		item, err := a.selector.SelectNext(items)
		if err != nil {
			return err
		}

		fmt.Printf("\n[%d/%d] %s\n", i+1, rounds, item)
		start := time.Now()
		line, err := in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		elapsed := float64(time.Since(start).Milliseconds())
		if strings.TrimSpace(line) == "q" {
			break
		}

		fmt.Print("correct? [y/n] ")
		grade, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		correct := strings.HasPrefix(strings.ToLower(strings.TrimSpace(grade)), "y")

		entry, err := a.selector.RecordResponse(item, elapsed, correct)
		if err != nil {
			return err
		}
		a.log.Debug().
			Str("item", entry.ItemID).
			Float64("response_ms", entry.ResponseMs).
			Stringer("outcome", entry.Outcome).
			Msg("recorded")
	}

	return a.printVerdict(items)
}

// printVerdict reports the session outcome from strongest claim to weakest.
func (a *app) printVerdict(items []string) error {
	fmt.Println()
	if ok, err := a.selector.AllAutomatic(items); err != nil {
		return err
	} else if ok {
		fmt.Println("All items automatic. Consider expanding the set.")
		return nil
	}
	if ok, err := a.selector.NeedsReview(items); err != nil {
		return err
	} else if ok {
		fmt.Println("You knew these once and they are fading. A short refresh will do.")
		return nil
	}
	if ok, err := a.selector.AllMastered(items); err != nil {
		return err
	} else if ok {
		fmt.Println("All items mastered. Push for speed next.")
		return nil
	}
	fmt.Println("Keep drilling.")
	return nil
}
