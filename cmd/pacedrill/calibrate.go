package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keydrill/pace"
)

func (a *app) calibrateCmd() *cobra.Command {
	var trials int
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Measure your motor baseline and store it in the profile",
		Long: `Measures how long pressing Enter takes with no thinking involved.
The median reaction time becomes the profile's motor baseline, which
scales every latency threshold so that slow hands are not mistaken
for slow recall.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCalibrate(trials)
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 7, "number of reaction trials")
	return cmd
}

func (a *app) runCalibrate(trials int) error {
	in := bufio.NewReader(os.Stdin)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	set := pace.CalibrationSet{}

	fmt.Println("Press Enter as fast as you can each time GO! appears.")
	for i := 0; i < trials; i++ {
		// Random pause so the press cannot be anticipated.
		time.Sleep(time.Duration(800+rng.Intn(1500)) * time.Millisecond)
		fmt.Printf("[%d/%d] GO! ", i+1, trials)
		start := time.Now()
		if _, err := in.ReadString('\n'); err != nil {
			return err
		}
		set.Add(float64(time.Since(start).Milliseconds()))
	}

	baseline, ok := set.Baseline()
	if !ok {
		return fmt.Errorf("not enough valid trials (%d) to estimate a baseline", set.Len())
	}

	a.prof.MotorBaselineMs = baseline
	if err := a.prof.Save(a.profilePath); err != nil {
		return err
	}
	fmt.Printf("\nMotor baseline: %.0f ms, saved to %s\n", baseline, a.profilePath)
	return nil
}
