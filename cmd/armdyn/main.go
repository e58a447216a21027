package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kvetner/armdyn/internal/config"
	"github.com/kvetner/armdyn/internal/dynsolver"
	"github.com/kvetner/armdyn/internal/model"
	"github.com/kvetner/armdyn/internal/spatial"
	"github.com/kvetner/armdyn/internal/tui"
	"github.com/kvetner/armdyn/internal/viz"
)

var (
	groupName  string
	gravityStr string
	posStr     string
	velStr     string
	accStr     string
	payload    float64
	configFile string
	preset     string
	degrees    bool
	// Sweep parameters
	sweepJoint    int
	sweepFrom     float64
	sweepTo       float64
	sweepSteps    int
	sweepQuantity string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "armdyn",
		Short: "serial-chain inverse dynamics and payload analysis",
	}

	rootCmd.PersistentFlags().StringVar(&groupName, "group", "arm", "joint group")
	rootCmd.PersistentFlags().StringVar(&gravityStr, "gravity", "0,0,-9.81", "gravity vector x,y,z")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset scenario")
	rootCmd.PersistentFlags().BoolVar(&degrees, "degrees", false, "interpret joint angles as degrees")

	infoCmd := &cobra.Command{
		Use:   "info [model]",
		Short: "show chain and limits",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	torquesCmd := &cobra.Command{
		Use:   "torques [model]",
		Short: "joint torques for a state",
		Args:  cobra.ExactArgs(1),
		RunE:  runTorques,
	}
	torquesCmd.Flags().StringVar(&posStr, "q", "", "joint positions, comma separated")
	torquesCmd.Flags().StringVar(&velStr, "qdot", "", "joint velocities, comma separated")
	torquesCmd.Flags().StringVar(&accStr, "qdotdot", "", "joint accelerations, comma separated")

	payloadCmd := &cobra.Command{
		Use:   "payload [model]",
		Short: "maximum payload at a configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  runPayload,
	}
	payloadCmd.Flags().StringVar(&posStr, "q", "", "joint positions, comma separated")

	payloadTorquesCmd := &cobra.Command{
		Use:   "payload-torques [model]",
		Short: "torques while holding a payload",
		Args:  cobra.ExactArgs(1),
		RunE:  runPayloadTorques,
	}
	payloadTorquesCmd.Flags().StringVar(&posStr, "q", "", "joint positions, comma separated")
	payloadTorquesCmd.Flags().Float64Var(&payload, "mass", 0.0, "payload mass (kg)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one joint and plot payload or torque",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&posStr, "q", "", "joint positions, comma separated")
	sweepCmd.Flags().IntVar(&sweepJoint, "joint", 0, "joint index to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", -1.57, "sweep start (rad)")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1.57, "sweep end (rad)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 60, "sweep samples")
	sweepCmd.Flags().StringVar(&sweepQuantity, "quantity", "payload", "payload or torque")
	sweepCmd.Flags().Float64Var(&payload, "mass", 0.0, "payload mass for torque sweeps (kg)")

	exploreCmd := &cobra.Command{
		Use:   "explore [model]",
		Short: "interactive joint-angle explorer",
		Args:  cobra.ExactArgs(1),
		RunE:  runExplore,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(infoCmd, torquesCmd, payloadCmd, payloadTorquesCmd, sweepCmd, exploreCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig folds preset and config file into flag values. CLI flags
// win over the file, the file wins over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if !cmd.Flags().Changed("group") && cfg.Group != "" {
		groupName = cfg.Group
	}
	if !cmd.Flags().Changed("gravity") {
		g := cfg.GravityVec()
		gravityStr = fmt.Sprintf("%g,%g,%g", g[0], g[1], g[2])
	}
	if f := cmd.Flags().Lookup("q"); f != nil && !f.Changed && len(cfg.State.Positions) > 0 {
		posStr = joinFloats(cfg.State.Positions)
	}
	if f := cmd.Flags().Lookup("qdot"); f != nil && !f.Changed && len(cfg.State.Velocities) > 0 {
		velStr = joinFloats(cfg.State.Velocities)
	}
	if f := cmd.Flags().Lookup("qdotdot"); f != nil && !f.Changed && len(cfg.State.Accelerations) > 0 {
		accStr = joinFloats(cfg.State.Accelerations)
	}
	if f := cmd.Flags().Lookup("mass"); f != nil && !f.Changed {
		payload = cfg.Payload
	}
	if f := cmd.Flags().Lookup("joint"); f != nil && !f.Changed {
		sweepJoint = cfg.Sweep.Joint
	}
	if f := cmd.Flags().Lookup("from"); f != nil && !f.Changed {
		sweepFrom = cfg.Sweep.From
	}
	if f := cmd.Flags().Lookup("to"); f != nil && !f.Changed {
		sweepTo = cfg.Sweep.To
	}
	if f := cmd.Flags().Lookup("steps"); f != nil && !f.Changed && cfg.Sweep.Steps > 0 {
		sweepSteps = cfg.Sweep.Steps
	}

	return cfg, nil
}

func loadModel(path string) (*model.Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".urdf", ".xml":
		return model.LoadURDF(path)
	default:
		return model.LoadYAML(path)
	}
}

func buildSolver(cmd *cobra.Command, path string) (*dynsolver.Solver, error) {
	if _, err := resolveConfig(cmd); err != nil {
		return nil, err
	}

	m, err := loadModel(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	gravity, err := parseVec3(gravityStr)
	if err != nil {
		return nil, fmt.Errorf("invalid gravity: %w", err)
	}

	s := dynsolver.New(m, groupName, gravity)
	if !s.Valid() {
		return nil, s.Err()
	}
	return s, nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	if _, err := resolveConfig(cmd); err != nil {
		return err
	}

	m, err := loadModel(args[0])
	if err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}

	gravity, err := parseVec3(gravityStr)
	if err != nil {
		return fmt.Errorf("invalid gravity: %w", err)
	}

	s := dynsolver.New(m, groupName, gravity)
	if !s.Valid() {
		return s.Err()
	}

	fmt.Printf("model: %s  links: %d  joints: %d\n", m.Name, len(m.Links), len(m.Joints))
	groups := make([]string, len(m.Groups))
	for i, g := range m.Groups {
		groups[i] = g.Name
	}
	fmt.Printf("groups: %s\n", strings.Join(groups, ", "))
	fmt.Printf("group: %s\n", s.Group())
	fmt.Printf("chain: %s → %s\n", s.BaseLink(), s.TipLink())
	fmt.Printf("segments: %d  movable joints: %d\n", s.SegmentCount(), s.JointCount())
	fmt.Printf("gravity norm: %.4f m/s²\n\n", s.GravityNorm())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "joint\teffort limit")
	limits := s.MaxTorques()
	for i, name := range s.JointNames() {
		fmt.Fprintf(w, "%s\t%.2f\n", name, limits[i])
	}
	return w.Flush()
}

func runTorques(cmd *cobra.Command, args []string) error {
	s, err := buildSolver(cmd, args[0])
	if err != nil {
		return err
	}

	q, err := parseAngles(posStr, s.JointCount())
	if err != nil {
		return err
	}
	qdot, err := parseStateVec(velStr, s.JointCount())
	if err != nil {
		return err
	}
	qdotdot, err := parseStateVec(accStr, s.JointCount())
	if err != nil {
		return err
	}

	torques, err := s.Torques(q, qdot, qdotdot, make([]spatial.Wrench, s.SegmentCount()))
	if err != nil {
		return err
	}

	fmt.Println(viz.TorqueTable(s.JointNames(), torques, s.MaxTorques(), -1))
	return nil
}

func runPayload(cmd *cobra.Command, args []string) error {
	s, err := buildSolver(cmd, args[0])
	if err != nil {
		return err
	}

	q, err := parseAngles(posStr, s.JointCount())
	if err != nil {
		return err
	}

	mass, binding, err := s.MaxPayload(q)
	if err != nil {
		return err
	}

	fmt.Println(viz.PayloadPanel(mass, binding, s.JointNames()))
	return nil
}

func runPayloadTorques(cmd *cobra.Command, args []string) error {
	s, err := buildSolver(cmd, args[0])
	if err != nil {
		return err
	}

	q, err := parseAngles(posStr, s.JointCount())
	if err != nil {
		return err
	}

	torques, err := s.PayloadTorques(q, payload)
	if err != nil {
		return err
	}

	fmt.Printf("payload: %.4f kg\n", payload)
	fmt.Println(viz.TorqueTable(s.JointNames(), torques, s.MaxTorques(), -1))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	s, err := buildSolver(cmd, args[0])
	if err != nil {
		return err
	}

	if sweepJoint < 0 || sweepJoint >= s.JointCount() {
		return fmt.Errorf("sweep joint %d out of range [0,%d)", sweepJoint, s.JointCount())
	}
	if sweepSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", sweepSteps)
	}

	q, err := parseAngles(posStr, s.JointCount())
	if err != nil {
		return err
	}
	if degrees {
		sweepFrom *= math.Pi / 180
		sweepTo *= math.Pi / 180
	}

	names := s.JointNames()
	data := make([]float64, sweepSteps)
	for i := 0; i < sweepSteps; i++ {
		q[sweepJoint] = sweepFrom + (sweepTo-sweepFrom)*float64(i)/float64(sweepSteps-1)

		switch sweepQuantity {
		case "payload":
			mass, _, err := s.MaxPayload(q)
			if err != nil {
				return err
			}
			data[i] = mass
		case "torque":
			torques, err := s.PayloadTorques(q, payload)
			if err != nil {
				return err
			}
			data[i] = torques[sweepJoint]
		default:
			return fmt.Errorf("unknown sweep quantity: %s", sweepQuantity)
		}
	}

	caption := viz.SweepCaption(names[sweepJoint], sweepFrom, sweepTo, sweepQuantity)
	fmt.Println(viz.SweepChart(data, caption))
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	s, err := buildSolver(cmd, args[0])
	if err != nil {
		return err
	}
	return tui.RunExplorer(s)
}

func parseVec3(s string) (r3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vec{}, fmt.Errorf("want 3 components, got %d", len(parts))
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return r3.Vec{}, err
		}
		vals[i] = v
	}
	return r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// parseAngles parses joint positions, converting from degrees when asked.
func parseAngles(s string, n int) ([]float64, error) {
	q, err := parseStateVec(s, n)
	if err != nil {
		return nil, err
	}
	if degrees {
		for i := range q {
			q[i] *= math.Pi / 180
		}
	}
	return q, nil
}

// parseStateVec parses a comma list and pads with zeros to n entries.
func parseStateVec(s string, n int) ([]float64, error) {
	out := make([]float64, n)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > n {
		return nil, fmt.Errorf("want at most %d values, got %d", n, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
