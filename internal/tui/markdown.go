package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle can block on terminal queries, so the
	// style is picked up front and renderers are reused.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	k := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()
	r := mdRenderers[k]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[k] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	if v := themeOverride(); v != "" {
		return v
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// helpMarkdown documents every key binding and command verb.
func helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# dips\n\n")
	b.WriteString("Notes scoped to the directory (or git repository) you started in. ")
	b.WriteString("Outside any known scope you see **Global** dips.\n\n")

	section := func(title string, bindings ...bindingHelpRow) {
		b.WriteString("## " + title + "\n\n")
		b.WriteString("| key | action |\n|---|---|\n")
		for _, r := range bindings {
			b.WriteString("| `" + r.keys + "` | " + r.desc + " |\n")
		}
		b.WriteString("\n")
	}

	section("Anywhere",
		row(globalKeys.ForceQuit),
	)
	section("Lists",
		row(pageKeys.Down), row(pageKeys.Up), row(pageKeys.Command), row(pageKeys.Search),
		row(pageKeys.Back), row(pageKeys.Help), row(pageKeys.Quit),
	)
	section("Dips page",
		row(pageKeys.Delete), row(pageKeys.Copy), row(pageKeys.Scopes),
	)
	section("Scopes page",
		row(pageKeys.Open),
	)
	section("Prompt",
		row(promptKeys.Submit), row(promptKeys.Cancel), row(promptKeys.Backspace),
	)

	b.WriteString("## Commands\n\n")
	b.WriteString("- `add <value>` stores a dip in the current scope\n")
	b.WriteString("- `tag <name>` tags the highlighted dip\n\n")
	b.WriteString("Deleting asks for confirmation: type `y` and press enter.\n")
	return b.String()
}

type bindingHelpRow struct {
	keys string
	desc string
}

func row(b key.Binding) bindingHelpRow {
	h := b.Help()
	return bindingHelpRow{keys: h.Key, desc: h.Desc}
}
