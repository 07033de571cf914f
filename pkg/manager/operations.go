package manager

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/projman/pkg/config"
	"github.com/arthur-debert/projman/pkg/errors"
	"github.com/arthur-debert/projman/pkg/host"
	"github.com/arthur-debert/projman/pkg/paths"
	"github.com/arthur-debert/projman/pkg/templates"
)

// Choices offered by ManageTemplates
const (
	ChoiceListTemplates  = "List templates"
	ChoiceDeleteTemplate = "Delete a template"
)

// AddCurrentProject registers the open workspace folder as a project
func (m *Manager) AddCurrentProject() *Result {
	r, ok := m.begin(OpAddCurrentProject)
	if !ok {
		return r.result
	}

	root, err := m.workspace()
	if err != nil {
		return r.fail(err)
	}
	name, ok, err := m.promptName("Enter project name", filepath.Base(root))
	if err != nil {
		return r.fail(err)
	}
	if !ok {
		return r.cancel()
	}

	if err := r.advance(StateValidating); err != nil {
		return r.fail(err)
	}
	if err := m.checkProjectName(name); err != nil {
		return r.fail(err)
	}

	if err := r.advance(StateCommitting); err != nil {
		return r.fail(err)
	}
	project, err := m.deps.Projects.Add(name, root)
	if err != nil {
		return r.fail(err)
	}
	return r.done(fmt.Sprintf("Project %q has been saved", project.Name), project.Path)
}

// OpenProject lets the user pick a saved project and opens it
func (m *Manager) OpenProject() *Result {
	r, ok := m.begin(OpOpenProject)
	if !ok {
		return r.result
	}

	list, err := m.deps.Projects.List()
	if err != nil {
		return r.fail(err)
	}
	if len(list) == 0 {
		return r.done("No projects added yet. Use 'projman add' to add one.", "")
	}

	options := make([]host.Option, len(list))
	for i, p := range list {
		options[i] = host.Option{Label: p.Name, Detail: p.Path}
	}
	choice, err := m.deps.Host.PromptChoice(options, "Select a project to open")
	if err != nil {
		return r.fail(err)
	}

	if err := r.advance(StateValidating); err != nil {
		return r.fail(err)
	}
	project, err := m.deps.Projects.Find(choice.Label)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			// The folder vanished or the list changed since it was shown
			r.logger.Debug().Str("name", choice.Label).Msg("Selected project no longer available")
			return r.done("", "")
		}
		return r.fail(err)
	}

	if err := r.advance(StateCommitting); err != nil {
		return r.fail(err)
	}
	if err := m.deps.Host.OpenAsWorkspace(project.Path); err != nil {
		return r.fail(errors.Wrap(err, errors.ErrInternal, "Failed to open project"))
	}
	return r.done("", project.Path)
}

// CopyProject duplicates the open workspace folder into the target folder
// and registers the copy.
func (m *Manager) CopyProject() *Result {
	r, ok := m.begin(OpCopyProject)
	if !ok {
		return r.result
	}

	source, err := m.workspace()
	if err != nil {
		return r.fail(err)
	}
	targetBase := m.targetFolder()
	if targetBase == "" {
		return r.fail(errors.New(errors.ErrNoTargetFolder,
			"Please select a target folder first (use 'projman target')"))
	}
	name, ok, err := m.promptName("Enter name for the copied project", filepath.Base(source))
	if err != nil {
		return r.fail(err)
	}
	if !ok {
		return r.cancel()
	}

	if err := r.advance(StateValidating); err != nil {
		return r.fail(err)
	}
	if err := m.checkCopyName(name); err != nil {
		return r.fail(err)
	}
	destination := filepath.Join(targetBase, name)

	if err := r.advance(StateCommitting); err != nil {
		return r.fail(err)
	}
	copied, err := m.deps.Duplicator.Copy(source, destination,
		m.patterns(config.KeyCopyExcludePatterns, DefaultCopyExcludePatterns))
	if err != nil {
		return r.fail(err)
	}
	if _, err := m.deps.Projects.Add(name, copied); err != nil {
		return r.fail(err)
	}

	result := r.done(fmt.Sprintf("Project copied to %s", copied), copied)
	m.openNew(r, copied)
	return result
}

// SelectTargetFolder sets the folder copies and new projects are created in
func (m *Manager) SelectTargetFolder() *Result {
	r, ok := m.begin(OpSelectTargetFolder)
	if !ok {
		return r.result
	}

	folder, err := m.deps.Host.PromptFolder("Select Target Folder for Copied Projects")
	if err != nil {
		return r.fail(err)
	}
	if strings.TrimSpace(folder) == "" {
		return r.cancel()
	}

	if err := r.advance(StateValidating); err != nil {
		return r.fail(err)
	}
	abs, err := m.checkFolder(folder)
	if err != nil {
		return r.fail(err)
	}

	if err := r.advance(StateCommitting); err != nil {
		return r.fail(err)
	}
	if err := m.deps.Host.SetConfigValue(config.KeyTargetFolder, abs); err != nil {
		return r.fail(err)
	}
	return r.done(fmt.Sprintf("Target folder set to: %s", abs), abs)
}

// SaveAsTemplate records the open workspace folder as a template
func (m *Manager) SaveAsTemplate() *Result {
	r, ok := m.begin(OpSaveAsTemplate)
	if !ok {
		return r.result
	}

	source, err := m.workspace()
	if err != nil {
		return r.fail(err)
	}
	name, ok, err := m.promptName("Enter template name", filepath.Base(source))
	if err != nil {
		return r.fail(err)
	}
	if !ok {
		return r.cancel()
	}
	description, err := m.deps.Host.PromptText("Enter template description", "")
	if err != nil {
		return r.fail(err)
	}
	defaults := m.patterns(config.KeyDefaultExcludePatterns, DefaultTemplateExcludePatterns)
	rawPatterns, err := m.deps.Host.PromptText("Exclude patterns (comma separated, "+host.EmptyAnswer+" for none)", strings.Join(defaults, ","))
	if err != nil {
		return r.fail(err)
	}

	if err := r.advance(StateValidating); err != nil {
		return r.fail(err)
	}
	if err := paths.ValidateName(name); err != nil {
		return r.fail(err)
	}
	exists, err := m.deps.Templates.Exists(name)
	if err != nil {
		return r.fail(err)
	}
	if exists && m.flag(config.KeyConfirmTemplateOverwrite, true) {
		overwrite, err := host.Confirm(m.deps.Host,
			fmt.Sprintf("Template %q already exists. Overwrite it?", name))
		if err != nil {
			return r.fail(err)
		}
		if !overwrite {
			return r.cancel()
		}
	}

	if err := r.advance(StateCommitting); err != nil {
		return r.fail(err)
	}
	tmpl, err := m.deps.Templates.Save(templates.SaveOptions{
		Name:            name,
		Description:     strings.TrimSpace(description),
		SourcePath:      source,
		ExcludePatterns: config.ParseList(rawPatterns),
		AllowOverwrite:  exists,
	})
	if err != nil {
		return r.fail(err)
	}
	return r.done(fmt.Sprintf("Template %q saved", tmpl.Name), tmpl.SourcePath)
}

// CreateFromTemplate copies a template's source folder into a new project
func (m *Manager) CreateFromTemplate() *Result {
	r, ok := m.begin(OpCreateFromTemplate)
	if !ok {
		return r.result
	}

	tmpl, err := m.chooseTemplate("Select a template")
	if err != nil {
		return r.fail(err)
	}
	name, ok, err := m.promptName("Enter name for the new project", "")
	if err != nil {
		return r.fail(err)
	}
	if !ok {
		return r.cancel()
	}
	targetBase := m.targetFolder()
	persistTarget := false
	if targetBase == "" {
		folder, err := m.deps.Host.PromptFolder("Select Target Folder for New Projects")
		if err != nil {
			return r.fail(err)
		}
		if strings.TrimSpace(folder) == "" {
			return r.cancel()
		}
		targetBase = folder
		persistTarget = true
	}

	if err := r.advance(StateValidating); err != nil {
		return r.fail(err)
	}
	if persistTarget {
		if targetBase, err = m.checkFolder(targetBase); err != nil {
			return r.fail(err)
		}
	}
	if err := m.checkCopyName(name); err != nil {
		return r.fail(err)
	}
	destination := filepath.Join(targetBase, name)

	if err := r.advance(StateCommitting); err != nil {
		return r.fail(err)
	}
	if persistTarget {
		if err := m.deps.Host.SetConfigValue(config.KeyTargetFolder, targetBase); err != nil {
			return r.fail(err)
		}
	}
	created, err := m.deps.Duplicator.Copy(tmpl.SourcePath, destination, tmpl.ExcludePatterns)
	if err != nil {
		return r.fail(err)
	}
	if _, err := m.deps.Projects.Add(name, created); err != nil {
		return r.fail(err)
	}

	result := r.done(fmt.Sprintf("Project %q created from template %q at %s", name, tmpl.Name, created), created)
	m.openNew(r, created)
	return result
}

// ManageTemplates lists templates or deletes one
func (m *Manager) ManageTemplates() *Result {
	r, ok := m.begin(OpManageTemplates)
	if !ok {
		return r.result
	}

	list, err := m.templatesOrFail()
	if err != nil {
		return r.fail(err)
	}
	action, err := m.deps.Host.PromptChoice([]host.Option{
		{Label: ChoiceListTemplates, Detail: "Show every saved template"},
		{Label: ChoiceDeleteTemplate, Detail: "Remove a template from the list"},
	}, "What would you like to do?")
	if err != nil {
		return r.fail(err)
	}

	switch action.Label {
	case ChoiceListTemplates:
		return r.done(describeTemplates(list), "")
	case ChoiceDeleteTemplate:
		tmpl, err := m.pickTemplate(list, "Select a template to delete")
		if err != nil {
			return r.fail(err)
		}
		return m.deleteTemplate(r, tmpl.Name, false)
	default:
		return r.cancel()
	}
}

// DeleteTemplate removes the named template after confirmation. With
// confirmed set the question is skipped.
func (m *Manager) DeleteTemplate(name string, confirmed bool) *Result {
	r, ok := m.begin(OpDeleteTemplate)
	if !ok {
		return r.result
	}
	return m.deleteTemplate(r, name, confirmed)
}

func (m *Manager) deleteTemplate(r *run, name string, confirmed bool) *Result {
	if err := r.advance(StateValidating); err != nil {
		return r.fail(err)
	}
	if _, err := m.deps.Templates.Get(name); err != nil {
		return r.fail(err)
	}
	if !confirmed {
		yes, err := host.Confirm(m.deps.Host, fmt.Sprintf("Delete template %q? This cannot be undone.", name))
		if err != nil {
			return r.fail(err)
		}
		if !yes {
			return r.cancel()
		}
	}

	if err := r.advance(StateCommitting); err != nil {
		return r.fail(err)
	}
	if err := m.deps.Templates.Delete(name); err != nil {
		return r.fail(err)
	}
	return r.done(fmt.Sprintf("Template %q deleted", name), "")
}

func (m *Manager) templatesOrFail() ([]templates.Template, error) {
	list, err := m.deps.Templates.List()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New(errors.ErrNotFound, "No templates found. Save a project as a template first.")
	}
	return list, nil
}

func (m *Manager) chooseTemplate(placeholder string) (*templates.Template, error) {
	list, err := m.templatesOrFail()
	if err != nil {
		return nil, err
	}
	return m.pickTemplate(list, placeholder)
}

func (m *Manager) pickTemplate(list []templates.Template, placeholder string) (*templates.Template, error) {
	options := make([]host.Option, len(list))
	for i, t := range list {
		options[i] = host.Option{Label: t.Name, Detail: templateDetail(t)}
	}
	choice, err := m.deps.Host.PromptChoice(options, placeholder)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Name == choice.Label {
			return &list[i], nil
		}
	}
	return nil, errors.Newf(errors.ErrNotFound, "Template %q not found", choice.Label)
}

func templateDetail(t templates.Template) string {
	if t.Description != "" {
		return t.Description
	}
	return t.SourcePath
}

func describeTemplates(list []templates.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d template(s):", len(list))
	for _, t := range list {
		fmt.Fprintf(&b, "\n  %s: %s", t.Name, templateDetail(t))
		if len(t.ExcludePatterns) > 0 {
			fmt.Fprintf(&b, " (excludes %s)", strings.Join(t.ExcludePatterns, ", "))
		}
	}
	return b.String()
}
