package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Neural-Entity/internal/driver"
)

type runStats struct {
	runIndex int
	seed     int64

	firstReactTick    int
	firstBurstTick    int
	firstEmotionTick  int
	firstSequenceTick int
	sequenceDoneTick  int
	emotionFadeTick   int
	shapeReturnTick   int
	firstTriggerTick  int

	reactions    int
	bursts       int
	phaseChanges int
	triggers     int
	unknownNames int
	triggerKinds map[string]struct{}

	windowSummary *driver.WindowReport
}

func main() {
	var runs int
	var seconds float64
	var fps float64
	var seedBase int64
	var seedStep int64
	var constrained bool
	var verbose bool
	var script string

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.Float64Var(&seconds, "seconds", 30, "simulated seconds per run")
	flag.Float64Var(&fps, "fps", 60, "fixed frames per second")
	flag.Int64Var(&seedBase, "seed", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&constrained, "constrained", true, "use the small-screen budget")
	flag.BoolVar(&verbose, "verbose", false, "print the full event log of each run")
	flag.StringVar(&script, "script", driver.DefaultScript, "stimulus script, \"at:key=value,...;...\"")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if seconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		return
	}
	if fps <= 0 {
		fmt.Println("error: -fps must be > 0")
		return
	}
	events, err := driver.ParseScript(script)
	if err != nil {
		fmt.Printf("error: -script: %v\n", err)
		return
	}

	profile := driver.ProfileFor(constrained)
	fmt.Printf("=== Headless Entity Report ===\n")
	fmt.Printf("profile=%s runs=%d seconds=%.1f fps=%.0f seed_base=%d seed_step=%d events=%d\n\n",
		profile, runs, seconds, fps, seedBase, seedStep, len(events))

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		tr := driver.NewTestRun(
			driver.WithProfile(profile),
			driver.WithSeed(seed),
			driver.WithFPS(fps),
			driver.WithScript(events...),
		)
		tr.RunSeconds(seconds)
		stats := collectRun(i+1, seed, tr)
		all = append(all, stats)
		printRun(stats)
		if verbose {
			fmt.Print(tr.SimLog.Format())
			fmt.Println()
		}
	}

	printAggregate(all)
}

func collectRun(runIndex int, seed int64, tr *driver.TestRun) runStats {
	log := tr.SimLog
	entries := log.Entries()

	kinds := map[string]struct{}{}
	for _, e := range entries {
		if e.Category == driver.CatTrigger {
			kinds[e.Key] = struct{}{}
		}
	}

	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		firstReactTick:    firstTick(entries, driver.CatReact, "stimulus", ""),
		firstBurstTick:    firstTick(entries, driver.CatBurst, "trigger", ""),
		firstEmotionTick:  firstTick(entries, driver.CatEmotion, "set", ""),
		firstSequenceTick: firstTick(entries, driver.CatSequence, "start", ""),
		sequenceDoneTick:  firstTick(entries, driver.CatSequence, "phase", "→ idle"),
		emotionFadeTick:   firstTick(entries, driver.CatEmotion, "faded", "→ neutral"),
		shapeReturnTick:   firstTick(entries, driver.CatShape, "return", ""),
		firstTriggerTick:  firstTick(entries, driver.CatTrigger, "", ""),
		reactions:         log.CountCategory(driver.CatReact, "stimulus"),
		bursts:            log.CountCategory(driver.CatBurst, "trigger"),
		phaseChanges:      log.CountCategory(driver.CatSequence, "phase"),
		triggers:          log.CountCategory(driver.CatTrigger, ""),
		unknownNames:      countUnknownNames(entries),
		triggerKinds:      kinds,
		windowSummary:     tr.Reporter.WindowSummary(),
	}
}

// countUnknownNames counts stimuli naming a shape, sequence or emotion the
// entity does not know.
func countUnknownNames(entries []driver.SimLogEntry) int {
	n := 0
	for _, e := range entries {
		if e.Key != "unknown" {
			continue
		}
		switch e.Category {
		case driver.CatShape, driver.CatSequence, driver.CatEmotion:
			n++
		}
	}
	return n
}

// firstTick returns the tick of the first entry matching category, key (any
// key when empty) and containing the substring, or -1.
func firstTick(entries []driver.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || (key != "" && e.Key != key) {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectQuiet flags a run in which stimuli arrived but nothing visible
// followed: no burst, no sequence phase change and no trigger.
func detectQuiet(rs runStats) (bool, string) {
	if rs.reactions == 0 {
		return false, "no_stimuli"
	}
	var reasons []string
	if rs.bursts == 0 {
		reasons = append(reasons, "no_bursts")
	}
	if rs.phaseChanges == 0 {
		reasons = append(reasons, "no_sequence_activity")
	}
	if rs.triggers == 0 {
		reasons = append(reasons, "no_triggers")
	}
	if len(reasons) == 3 {
		return true, strings.Join(reasons, "+")
	}
	return false, "active"
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_react=%d first_burst=%d first_emotion=%d sequence_start=%d sequence_done=%d emotion_fade=%d shape_return=%d first_trigger=%d\n",
		rs.firstReactTick, rs.firstBurstTick, rs.firstEmotionTick, rs.firstSequenceTick,
		rs.sequenceDoneTick, rs.emotionFadeTick, rs.shapeReturnTick, rs.firstTriggerTick)
	fmt.Printf("event_totals: reactions=%d bursts=%d phase_changes=%d triggers=%d unknown_names=%d\n",
		rs.reactions, rs.bursts, rs.phaseChanges, rs.triggers, rs.unknownNames)
	fmt.Printf("trigger_kinds: %s\n", joinSet(rs.triggerKinds))
	quiet, reason := detectQuiet(rs)
	fmt.Printf("quiet=%t reason=%s\n", quiet, reason)
	if rs.windowSummary != nil {
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick)
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalReactions := 0
	totalBursts := 0
	totalPhases := 0
	totalTriggers := 0
	burstTicks := make([]int, 0, len(all))
	doneTicks := make([]int, 0, len(all))
	fadeTicks := make([]int, 0, len(all))
	kinds := map[string]struct{}{}

	for _, rs := range all {
		totalReactions += rs.reactions
		totalBursts += rs.bursts
		totalPhases += rs.phaseChanges
		totalTriggers += rs.triggers
		if rs.firstBurstTick >= 0 {
			burstTicks = append(burstTicks, rs.firstBurstTick)
		}
		if rs.sequenceDoneTick >= 0 {
			doneTicks = append(doneTicks, rs.sequenceDoneTick)
		}
		if rs.emotionFadeTick >= 0 {
			fadeTicks = append(fadeTicks, rs.emotionFadeTick)
		}
		for k := range rs.triggerKinds {
			kinds[k] = struct{}{}
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_events_per_run: reactions=%.1f bursts=%.1f phase_changes=%.1f triggers=%.1f\n",
		avg(totalReactions, len(all)), avg(totalBursts, len(all)), avg(totalPhases, len(all)), avg(totalTriggers, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_burst=%s sequence_done=%s emotion_fade=%s\n",
		avgTickString(burstTicks), avgTickString(doneTicks), avgTickString(fadeTicks))
	fmt.Printf("trigger_kinds_seen=%d [%s]\n", len(kinds), joinSet(kinds))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
