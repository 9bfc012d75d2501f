package controller_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/litepro/internal/automation"
	"github.com/GriffinCanCode/litepro/internal/automation/automationtest"
	"github.com/GriffinCanCode/litepro/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTemplates(t *testing.T, names ...string) func(*controller.Options) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("template"), 0o644))
	}
	return func(o *controller.Options) { o.TemplateDir = dir }
}

func TestInsertTemplate(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake, withTemplates(t, "header.hwp"))

	require.NoError(t, c.InsertTemplate("header.hwp"))

	files := fake.Executed("InsertFile")
	require.Len(t, files, 1)
	file, _ := files[0].Set.Items["FileName"].(string)
	assert.True(t, filepath.IsAbs(file))
	assert.Equal(t, "header.hwp", filepath.Base(file))
	assert.Equal(t, 1, files[0].Set.Optional["KeepCharShape"])
	assert.Zero(t, fake.Count("execute:RepeatFind"))
}

func TestInsertTemplateFallsBack(t *testing.T) {
	fake := automationtest.New()
	fake.Reject("execute:InsertFile", "execute:FileInsert")
	fake.RejectAction("InsertFile")
	fake.Handle("invoke:FileInsert", func(f *automationtest.Fake, c automationtest.Call) (interface{}, error) {
		return true, nil
	})
	c := connected(t, fake, withTemplates(t, "header.hwp"))

	require.NoError(t, c.InsertTemplate("header.hwp"))
	assert.True(t, fake.Has("invoke:FileInsert"))
}

func TestInsertBoxTemplateRemovesAmpMarker(t *testing.T) {
	fake := automationtest.New()
	fake.Doc = "앞 &&& 뒤"
	fake.Pos = 4
	c := connected(t, fake, withTemplates(t, "box.hwp"))

	require.NoError(t, c.InsertTemplate("box.hwp"))

	assert.Equal(t, "앞  뒤", fake.Doc)
	assert.Equal(t, 4, fake.Pos)
}

func TestInsertTemplateRejects(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{name: "empty", template: " "},
		{name: "missing", template: "nope.hwp"},
		{name: "escapes directory", template: "../header.hwp"},
		{name: "absolute", template: "/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := automationtest.New()
			c := connected(t, fake, withTemplates(t, "header.hwp"))

			err := c.InsertTemplate(tt.template)

			assert.ErrorIs(t, err, automation.ErrInvalidArgument)
			assert.Empty(t, fake.Calls)
		})
	}
}

func TestInsertBoxUsesTemplate(t *testing.T) {
	fake := automationtest.New()
	fake.CellAfter = 0
	c := connected(t, fake, withTemplates(t, "box_template_noheader.hwp"))

	require.NoError(t, c.InsertBox())

	assert.Len(t, fake.Executed("InsertFile"), 1)
	assert.Empty(t, fake.Executed("TableCreate"))
	assert.True(t, typingState(c).InBox)
}

func TestInsertBoxTemplateWithoutCellFallsBack(t *testing.T) {
	fake := automationtest.New()
	c := connected(t, fake, withTemplates(t, "box_template_noheader.hwp"))

	require.NoError(t, c.InsertBox())

	assert.Len(t, fake.Executed("InsertFile"), 1)
	assert.Len(t, fake.Executed("TableCreate"), 1)
	assert.True(t, typingState(c).InBox)
}

func TestTemplates(t *testing.T) {
	c := connected(t, automationtest.New(), withTemplates(t, "header.hwp", "sub/q.hwpx", "notes.txt"))

	names, err := c.Templates()
	require.NoError(t, err)
	assert.Equal(t, []string{"header.hwp", "sub/q.hwpx"}, names)
}
