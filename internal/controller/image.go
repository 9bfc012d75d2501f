package controller

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/imaging"
	"github.com/GriffinCanCode/litepro/internal/typing"
	"go.uber.org/zap"
)

// SetSourceImage sets the image later regions are cropped from. An empty
// path clears it.
func (c *Controller) SetSourceImage(path string) {
	c.sourceImage = path
}

// InsertCroppedImage crops a region of the source image, given as
// fractions of its size, and inserts it on its own line
func (c *Controller) InsertCroppedImage(r imaging.Rect) error {
	if err := c.ensure("InsertCroppedImage"); err != nil {
		return err
	}
	if c.sourceImage == "" {
		return automation.InvalidArgument("InsertCroppedImage", "source image is not set")
	}
	if _, err := os.Stat(c.sourceImage); err != nil {
		return automation.InvalidArgument("InsertCroppedImage", "source image not found: %s", c.sourceImage)
	}

	img, err := c.images.Open(c.sourceImage)
	if err != nil {
		return imageError("InsertCroppedImage", err)
	}
	cropped, err := c.images.Crop(img, r)
	if err != nil {
		return automation.InvalidArgument("InsertCroppedImage", "bad crop (%g,%g)-(%g,%g): %v", r.X1, r.Y1, r.X2, r.Y2, err)
	}
	cropped = c.images.FitWidth(cropped, c.opts.CropMaxWidth)

	file, err := c.images.SaveTemp(cropped, "crop")
	if err != nil {
		return automation.Failure("InsertCroppedImage", err)
	}

	err = c.insertWrappedPicture(file)
	c.metrics.RecordInsertion("image", err)
	return err
}

// InsertImage downscales an image file and inserts it on its own line
func (c *Controller) InsertImage(path string) error {
	if err := c.ensure("InsertImage"); err != nil {
		return err
	}
	if path == "" {
		return automation.InvalidArgument("InsertImage", "image path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return automation.InvalidArgument("InsertImage", "bad image path %q: %v", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return automation.InvalidArgument("InsertImage", "image not found: %s", abs)
	}

	err = c.insertWrappedPicture(c.scaled(abs))
	c.metrics.RecordInsertion("image", err)
	return err
}

// scaled returns a downscaled copy of the image, or the original path
// when it cannot be resized
func (c *Controller) scaled(path string) string {
	img, err := c.images.Open(path)
	if err != nil {
		c.logger.Debug("image not resized", zap.String("path", path), zap.Error(err))
		return path
	}
	out, err := c.images.SaveTemp(c.images.Scale(img, c.opts.ImageScale), "resized")
	if err != nil {
		c.logger.Debug("image not resized", zap.String("path", path), zap.Error(err))
		return path
	}
	return out
}

// insertWrappedPicture places a picture in a borderless 1x1 container so
// text cannot flow beside it, then exits the container
func (c *Controller) insertWrappedPicture(file string) error {
	if err := c.createTable(1, 1); err != nil {
		return err
	}
	c.ctx.EnterContainer()
	c.zeroCellMargins()
	c.hideCellBorders()
	c.applyAlign(typing.AlignCenter)

	err := c.insertPicture(file)
	return errors.Join(err, c.leaveTable())
}

func (c *Controller) insertPicture(file string) error {
	var strategies []automation.Strategy
	for _, set := range []string{"HInsertPicture", "HPicture"} {
		strategies = append(strategies, accepted(automation.ExecuteSet("InsertPicture", automation.ParamSet{
			Name:     set,
			Shape:    automation.ShapeStructured,
			Items:    automation.Params{"FileName": file},
			Optional: automation.Params{"Treatment": 0, "SizeType": 0},
		})))
	}
	strategies = append(strategies,
		automation.Method("InsertPicture", file, 0),
		automation.Method("insert_picture", file, 0),
		automation.RunByName("InsertPicture"),
	)

	if _, err := c.exec.Cascade("InsertPicture", strategies...); err != nil {
		return err
	}
	c.treatAsChar()
	return nil
}

// treatAsChar marks the picture just inserted as flowing with text
func (c *Controller) treatAsChar() {
	dialog := automation.ExecuteSet("ShapeObjDialog", automation.ParamSet{
		Name:     "HShapeObject",
		Shape:    automation.ShapeStructured,
		Items:    automation.Params{"TreatAsChar": 1},
		Optional: automation.Params{"TextWrap": 0},
	})
	if c.exec.BestEffort("ShapeObjDialog", dialog) {
		return
	}

	for _, sel := range []string{"SelectCtrlReverse", "SelectCtrlFront"} {
		if c.exec.TryRun(sel) {
			break
		}
	}
	c.exec.BestEffort("TreatAsChar",
		automation.Strategy{Name: "control", Call: func(t automation.Transport) (interface{}, error) {
			ed, ok := t.(automation.ControlEditor)
			if !ok {
				return nil, errNoControlEditor
			}
			return nil, ed.SetControlProperty("TreatAsChar", 1)
		}},
	)
	c.exec.BestEffort("ShapeObjDialog", dialog)
	c.exec.TryRun("Cancel")
}

var errNoControlEditor = errors.New("transport cannot edit controls")

// accepted treats an explicit false result as a refusal
func accepted(s automation.Strategy) automation.Strategy {
	call := s.Call
	s.Call = func(t automation.Transport) (interface{}, error) {
		res, err := call(t)
		if err != nil {
			return nil, err
		}
		if ok, isBool := res.(bool); isBool && !ok {
			return nil, errRefused
		}
		return res, nil
	}
	return s
}

var errRefused = errors.New("application refused the operation")

func imageError(op string, err error) error {
	if errors.Is(err, imaging.ErrUnsupported) || os.IsNotExist(err) {
		return automation.InvalidArgument(op, "%v", err)
	}
	return automation.Failure(op, err)
}
