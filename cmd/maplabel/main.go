package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/canvas"

	"github.com/bmharper/maplabel"
	"github.com/bmharper/maplabel/internal/catalog"
	"github.com/bmharper/maplabel/internal/config"
	"github.com/bmharper/maplabel/internal/logger"
	"github.com/bmharper/maplabel/internal/render"
	"github.com/bmharper/maplabel/internal/textmetrics"
)

type Place struct {
	Input     string `index:"0" desc:"Feature file (.csv or .json)"`
	Output    string `short:"o" desc:"Placement JSON file, stdout when empty"`
	Config    string `short:"c" desc:"YAML config file"`
	Env       string `default:".env" desc:"Environment file"`
	Algorithm string `short:"a" desc:"greedy, advanced, grasp or genetic"`
	Index     string `desc:"Spatial index: packed or rtree"`
	Rounds    int    `short:"r" default:"-1" desc:"Local search rounds"`
	Seed      int64  `short:"s" desc:"Genetic seed"`
	Labels    string `short:"l" desc:"Placement JSON to refine with local search"`
	Render    string `desc:"Draw the map to this file (.svg, .pdf, .png)"`
}

func main() {
	root := argp.NewCmd(&Place{}, "Point feature label placement")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Place) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	_ = godotenv.Load(cmd.Env)
	logger.Setup()

	if err := cmd.run(); err != nil {
		logger.L().Error("maplabel failed", slog.String("input", cmd.Input), slog.Any("err", err))
		return err
	}
	return nil
}

func (cmd *Place) run() error {
	log := logger.L()
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Algorithm != "" {
		cfg.Algorithm = cmd.Algorithm
	}
	if cmd.Index != "" {
		cfg.Index = cmd.Index
	}
	if cmd.Rounds >= 0 {
		cfg.Rounds = cmd.Rounds
	}
	if cmd.Seed != 0 {
		cfg.Genetic.Seed = cmd.Seed
	}

	points, err := catalog.ReadFile(cmd.Input)
	if err != nil {
		return err
	}

	var face *canvas.FontFace
	var measurer textmetrics.Measurer = textmetrics.Fixed{Size: cfg.Font.Size, Advance: cfg.Font.Advance, Scale: cfg.Font.Scale}
	if cfg.Font.File != "" {
		font, err := textmetrics.LoadFont(cfg.Font.File, cfg.Font.Size, cfg.Font.Scale)
		if err != nil {
			return err
		}
		measurer, face = font, font.Face()
	}
	textmetrics.Apply(measurer, points)

	bounds := catalog.Extent(points, cfg.Margin+labelReach(points))
	if len(cfg.Bounds) != 0 {
		if len(cfg.Bounds) != 4 {
			return fmt.Errorf("%w: bounds needs 4 values, got %d", maplabel.ErrInvalidBoundingBox, len(cfg.Bounds))
		}
		bounds = orb.Bound{Min: orb.Point{cfg.Bounds[0], cfg.Bounds[1]}, Max: orb.Point{cfg.Bounds[2], cfg.Bounds[3]}}
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Logger = log
	layout, err := maplabel.NewLayout(points, bounds, &opts)
	if err != nil {
		return err
	}

	algo, lcfg, err := cfg.Labeler()
	if err != nil {
		return err
	}
	var labeler maplabel.Labeler
	if cmd.Labels != "" {
		if labeler, err = refine(layout, cmd.Labels, lcfg.Rounds); err != nil {
			return err
		}
	} else if labeler, err = maplabel.New(layout, algo, lcfg); err != nil {
		return err
	}

	start := time.Now()
	if err := labeler.Run(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	res := catalog.NewResult(layout, algo)
	if cmd.Labels != "" {
		res.Algorithm = "local-search"
	}
	if err := writeResult(cmd.Output, res); err != nil {
		return err
	}
	if cmd.Render != "" {
		ropts := render.DefaultOptions()
		if cfg.Font.Scale > 0 {
			ropts.Scale = 1 / cfg.Font.Scale
		}
		ropts.Face = face
		if err := render.Write(cmd.Render, layout, ropts); err != nil {
			return err
		}
	}

	s := res.Summary
	log.Info("labels placed",
		slog.String("algorithm", res.Algorithm),
		slog.String("index", layout.Options().Index.String()),
		slog.Int("points", len(points)),
		slog.Int("labeled", s.Labeled),
		slog.Int("unlabeled", s.Unlabeled),
		slog.Int("overlaps", s.LabelOverlaps),
		slog.Int("point_conflicts", s.PointConflicts),
		slog.Int("border_conflicts", s.BorderConflicts),
		slog.Float64("penalty", s.Penalty),
		slog.Duration("elapsed", elapsed))
	return nil
}

// refine loads an earlier placement into the layout and returns a local search over it.
func refine(layout *maplabel.Layout, path string, rounds int) (maplabel.Labeler, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prev, err := catalog.ReadResult(f)
	if err != nil {
		return nil, err
	}
	positions, err := prev.Positions(len(layout.Points))
	if err != nil {
		return nil, err
	}
	if err := layout.SetLabels(positions); err != nil {
		return nil, err
	}
	return maplabel.NewLocalSearch(layout, rounds), nil
}

func writeResult(path string, res catalog.Result) error {
	if path == "" {
		return catalog.WriteJSON(os.Stdout, res)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := catalog.WriteJSON(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// labelReach is how far the largest label can stick out past its point's disc.
func labelReach(points []maplabel.Point) float64 {
	reach := 0.0
	for _, p := range points {
		if p.HasText() {
			reach = max(reach, p.Offset+max(p.Width, p.Height))
		}
	}
	return reach
}
