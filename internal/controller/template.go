package controller

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/bmatcuk/doublestar/v4"
)

const templatePattern = "**/*.{hwp,hwpx}"

// templates whose residual "&&&" marker is removed after insertion
var ampTemplates = map[string]bool{"box.hwp": true, "box_white.hwp": true}

// InsertTemplate inserts a prebuilt document from the template directory
// at the cursor
func (c *Controller) InsertTemplate(name string) error {
	if err := c.ensure("InsertTemplate"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return automation.InvalidArgument("InsertTemplate", "template name is empty")
	}
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return automation.InvalidArgument("InsertTemplate", "template name %q escapes the template directory", name)
	}
	if !c.templateExists(name) {
		return automation.InvalidArgument("InsertTemplate", "template not found: %s", c.templatePath(name))
	}

	err := c.insertTemplateFile(c.templatePath(name))
	c.metrics.RecordInsertion("template", err)
	if err != nil {
		return err
	}

	base := strings.ToLower(path.Base(filepath.ToSlash(name)))
	if ampTemplates[base] {
		c.cleanupTemplatePlaceholder(automation.MarkerAmp)
	}
	return nil
}

// Templates lists template names relative to the template directory
func (c *Controller) Templates() ([]string, error) {
	dir := c.opts.TemplateDir
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	names, err := doublestar.Glob(os.DirFS(dir), templatePattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (c *Controller) templatePath(name string) string {
	p := filepath.Join(c.opts.TemplateDir, filepath.FromSlash(name))
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func (c *Controller) templateExists(name string) bool {
	info, err := os.Stat(c.templatePath(name))
	return err == nil && !info.IsDir()
}

// insertTemplateFile runs the file insertion cascade for an absolute path
func (c *Controller) insertTemplateFile(file string) error {
	optional := automation.Params{
		"FileName2":          file,
		"FilePath":           file,
		"Filename":           file,
		"KeepSection":        0,
		"KeepCharShape":      1,
		"KeepParagraphShape": 1,
		"KeepStyle":          1,
		"SaveBookmark":       0,
	}

	var strategies []automation.Strategy
	for _, set := range []string{"HInsertFile", "HFileInsert"} {
		for _, action := range []string{"InsertFile", "FileInsert"} {
			strategies = append(strategies, automation.ExecuteSet(action, automation.ParamSet{
				Name:     set,
				Shape:    automation.ShapeStructured,
				Items:    automation.Params{"FileName": file},
				Optional: optional,
			}))
		}
	}
	for _, action := range []string{"InsertFile", "FileInsert"} {
		strategies = append(strategies,
			automation.Method(action, file),
			automation.RunByName(action, file),
		)
	}
	for _, method := range []string{"insert_file", "insertfile", "Insertfile"} {
		strategies = append(strategies, automation.Method(method, file))
	}

	_, err := c.exec.Cascade("InsertFile", strategies...)
	return err
}
