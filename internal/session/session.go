// Package session orchestrates one calibration run: it owns the normalized
// inputs, the landmark registry and the last estimation result, and exposes
// the synchronous operations a driver or UI layer calls. The core packages
// underneath are pure; all logging happens here.
package session

import (
	goimage "image"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"landmark-calib/internal/calibration"
	"landmark-calib/internal/config"
	"landmark-calib/internal/dataset"
	"landmark-calib/internal/image"
	"landmark-calib/internal/landmark"
	"landmark-calib/internal/overlay"
	"landmark-calib/internal/project"
	"landmark-calib/pkg/geometry"
)

// canvasMargin is the display margin the cloud is scaled into.
const canvasMargin = 25

// cloudPad is the margin around the rendered cloud visualization.
const cloudPad = 10

// ErrNoResult indicates that results were requested before a successful
// calibration.
var ErrNoResult = errors.New("no calibration has been performed yet")

// Session holds the state of one calibration session. It is owned by a
// single logical user; concurrent sessions each get their own instance.
type Session struct {
	cfg    *config.Config
	logger golog.Logger

	imagePath string
	csvPath   string

	image      *goimage.NRGBA     // normalized reference image
	table      *dataset.Table     // loaded CSV rows
	cloud      []geometry.Point2D // scaled cloud, in source canvas space
	cloudImage goimage.Image      // framed cloud visualization

	registry *landmark.Registry
	result   *calibration.Result
}

// New creates an empty session with the given configuration.
func New(cfg *config.Config, logger golog.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = golog.NewDevelopmentLogger("session")
	}
	return &Session{
		cfg:      cfg,
		logger:   logger,
		registry: landmark.NewRegistry(cfg.LandmarkCapacity),
	}
}

// Registry returns the session's landmark registry.
func (s *Session) Registry() *landmark.Registry {
	return s.registry
}

// Image returns the normalized reference image, nil before LoadImage.
func (s *Session) Image() goimage.Image {
	if s.image == nil {
		return nil
	}
	return s.image
}

// CloudImage returns the cloud visualization, nil before LoadDataset.
func (s *Session) CloudImage() goimage.Image {
	return s.cloudImage
}

// Result returns the last calibration result, nil if none.
func (s *Session) Result() *calibration.Result {
	return s.result
}

// LoadImage loads and normalizes the reference image. Old landmarks refer
// to a coordinate space that no longer exists, so the registry is cleared.
func (s *Session) LoadImage(path string) error {
	raw, err := image.Load(path)
	if err != nil {
		return err
	}

	normalized, err := image.Normalize(raw, normalizeOptions(s.cfg))
	if err != nil {
		return errors.Wrapf(err, "normalizing image %s", path)
	}

	s.imagePath = path
	s.image = normalized
	s.registry.Clear()
	s.result = nil
	s.logger.Infow("loaded reference image", "path", path,
		"width", normalized.Bounds().Dx(), "height", normalized.Bounds().Dy())
	return nil
}

// LoadDataset loads the CSV coordinates, scales them to the canvas and
// renders the framed cloud visualization. The registry is cleared.
func (s *Session) LoadDataset(path string) error {
	table, err := dataset.Load(path)
	if err != nil {
		return err
	}

	scaled, scale := dataset.ScaleToCanvas(table.Points, s.cfg.CanvasSize, canvasMargin)
	rendered := dataset.RenderCloud(scaled, cloudPad)
	framed, err := image.AutoCropWithTolerance(rendered, s.cfg.Border, s.cfg.Tolerance)
	if err != nil {
		return errors.Wrapf(err, "framing cloud visualization for %s", path)
	}

	s.csvPath = path
	s.table = table
	s.cloud = scaled
	s.cloudImage = framed
	s.registry.Clear()
	s.result = nil
	s.logger.Infow("loaded dataset", "path", path, "points", len(scaled), "scale", scale)
	return nil
}

// AddLandmark records a picked point and returns its assigned id.
func (s *Session) AddLandmark(set landmark.Set, p geometry.Point2D) (int, error) {
	return s.registry.Add(set, p)
}

// Undo removes the most recently added landmark across both sets.
func (s *Session) Undo() {
	s.registry.Undo()
}

// DeleteLandmark removes one landmark, invalidating its correspondence.
func (s *Session) DeleteLandmark(set landmark.Set, id int) bool {
	return s.registry.Delete(set, id)
}

// CanCalibrate reports whether enough complete pairs exist for estimation.
func (s *Session) CanCalibrate() bool {
	return s.registry.NumPairs() >= calibration.MinimumPairs
}

// Calibrate estimates the transform mapping the source (CSV canvas) space
// into the reference image space from the current pairs. The fresh result
// supersedes any previous one.
func (s *Session) Calibrate() (*calibration.Result, error) {
	reference, source := s.registry.Pairs()

	result, err := calibration.Estimate(reference, source)
	if err != nil {
		return nil, err
	}

	s.result = result
	s.logger.Infow("calibration complete", "pairs", len(reference),
		"mean_error", result.MeanError, "max_error", result.MaxError,
		"elapsed", result.ComputationTime)
	if result.Degenerate {
		s.logger.Warnw("landmark configuration is collinear; fit is under-determined",
			"std_error", result.StdError)
	}
	return result, nil
}

// Overlay renders the QA overlay for the last result.
func (s *Session) Overlay() (goimage.Image, error) {
	if s.result == nil {
		return nil, ErrNoResult
	}
	if s.image == nil {
		return nil, errors.New("no reference image loaded")
	}

	reference, source := s.registry.Pairs()
	return overlay.Render(s.image, s.cloud, reference, source,
		s.result.Transform(), s.overlayOptions()), nil
}

// SaveResults writes all session outputs to dir: the results JSON, the QA
// overlay PNG, the calibrated CSV, and the processed intermediate images.
func (s *Session) SaveResults(dir string) error {
	if s.result == nil {
		return ErrNoResult
	}

	file := project.New(s.imagePath, s.csvPath, project.Landmarks{
		Reference: s.registry.Points(landmark.SetReference),
		Source:    s.registry.Points(landmark.SetSource),
	}, s.result)
	if err := file.Save(filepath.Join(dir, project.ResultsFileName)); err != nil {
		return err
	}

	qa, err := s.Overlay()
	if err != nil {
		return err
	}
	if err := image.SavePNG(filepath.Join(dir, project.OverlayFileName), qa); err != nil {
		return err
	}

	if s.image != nil {
		if err := image.SavePNG(filepath.Join(dir, project.ProcessedImageName), s.image); err != nil {
			return err
		}
	}
	if s.cloudImage != nil {
		if err := image.SavePNG(filepath.Join(dir, project.CloudImageName), s.cloudImage); err != nil {
			return err
		}
	}

	if s.table != nil {
		transformed := s.result.Transform().ApplyAll(s.cloud)
		path := filepath.Join(dir, project.CalibratedCSVName)
		if err := dataset.WriteCalibrated(path, s.table, transformed); err != nil {
			return err
		}
	}

	s.logger.Infow("results saved", "dir", dir)
	return nil
}

func (s *Session) overlayOptions() overlay.Options {
	opts := overlay.DefaultOptions()
	opts.CanvasSize = s.cfg.CanvasSize
	if s.cfg.Overlay.CloudRadius > 0 {
		opts.CloudRadius = s.cfg.Overlay.CloudRadius
	}
	if s.cfg.Overlay.CrossHalfWidth > 0 {
		opts.CrossHalfWidth = s.cfg.Overlay.CrossHalfWidth
	}
	if s.cfg.Overlay.LandmarkRadius > 0 {
		opts.LandmarkRadius = s.cfg.Overlay.LandmarkRadius
	}
	return opts
}

func normalizeOptions(cfg *config.Config) image.NormalizeOptions {
	return image.NormalizeOptions{
		CanvasSize: cfg.CanvasSize,
		Border:     cfg.Border,
		Tolerance:  cfg.Tolerance,
	}
}
