// Package prompt implements the interactive Prompter on promptui. It is
// the only package that assumes a terminal; the selection pipeline sees
// answers, never the prompt mechanics.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"gymnarium/internal/catalog"
)

// ErrInterrupted is returned when the user aborts a prompt with ctrl-c.
var ErrInterrupted = errors.New("interrupted")

// Terminal asks questions on a terminal. The zero value writes banners to
// stdout.
type Terminal struct {
	Out io.Writer
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stdout
}

// ChooseVariant lists the offered variants under the category headline and
// returns the chosen variant's display name. Variants excluded by earlier
// choices are mentioned but not selectable.
func (t *Terminal) ChooseVariant(category catalog.Category, offered, excluded []catalog.Variant) (string, error) {
	fmt.Fprintln(t.out(), category.Headline())
	if len(excluded) > 0 {
		fmt.Fprintf(t.out(), "(not compatible with the previous selections: %s)\n", variantNames(excluded))
	}

	sel := promptui.Select{
		Label:    fmt.Sprintf("Choose an %s", category),
		Items:    selectItems(offered),
		Size:     len(offered),
		Searcher: aliasSearcher(offered),
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "▸ {{ . | cyan }}",
			Inactive: "  {{ . }}",
			Selected: fmt.Sprintf("%s: {{ . }}", category),
		},
	}
	index, _, err := sel.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	return offered[index].NiceName, nil
}

// AskOption prompts for one option value, showing the description and the
// declared type and default. An empty answer means "use the default".
func (t *Terminal) AskOption(descriptor catalog.OptionDescriptor) (string, error) {
	fmt.Fprintln(t.out(), descriptor.Description)
	p := promptui.Prompt{
		Label:     OptionLabel(descriptor),
		AllowEdit: true,
	}
	answer, err := p.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	return answer, nil
}

// Ask prompts for free text. Empty answers return def; noneHint is shown
// when def itself is empty.
func (t *Terminal) Ask(question, def, noneHint string) (string, error) {
	hint := def
	if hint == "" {
		hint = noneHint
	}
	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", question, hint),
		AllowEdit: true,
	}
	answer, err := p.Run()
	if err != nil {
		return "", mapPromptErr(err)
	}
	if strings.TrimSpace(answer) == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question; an empty answer takes def.
func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	defAnswer := "n"
	if def {
		defAnswer = "y"
	}
	p := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
		Default:   defAnswer,
	}
	_, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, mapPromptErr(err)
	}
	return true, nil
}

// OptionLabel renders one descriptor the way the wizard announces it:
// name, declared type and default.
func OptionLabel(d catalog.OptionDescriptor) string {
	return fmt.Sprintf("%s [%s; default: %s]", d.Name, d.Kind, d.Default)
}

func selectItems(variants []catalog.Variant) []string {
	items := make([]string, len(variants))
	for i, v := range variants {
		items[i] = fmt.Sprintf("%s (%s, %s)", v.NiceName, v.LongName, v.ShortName)
	}
	return items
}

func variantNames(variants []catalog.Variant) string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.NiceName
	}
	return strings.Join(names, ", ")
}

// aliasSearcher matches typed input against every alias of the offered
// variants so "t2d" finds "Terminal in 2D".
func aliasSearcher(offered []catalog.Variant) func(string, int) bool {
	return func(input string, index int) bool {
		needle := strings.ToLower(strings.TrimSpace(input))
		for _, alias := range offered[index].Aliases() {
			if strings.Contains(strings.ToLower(alias), needle) {
				return true
			}
		}
		return false
	}
}

func mapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrInterrupted
	}
	return err
}
