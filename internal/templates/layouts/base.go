package layouts

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// MainContentID is the id of the element holding page content.
const MainContentID = "main-content"

// Base wraps content in the full HTML document.
func Base(title string, palette Palette, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := fmt.Sprintf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>%s</title><script src="https://unpkg.com/htmx.org@1.9.12"></script><style>%s</style></head>`,
			html.EscapeString(title),
			themeCSSVars(palette),
		)
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body class="min-h-screen bg-gray-50 text-gray-900"><header style="background:var(--theme-primary)" class="px-6 py-4 text-white"><a href="/" class="text-lg font-semibold">Coptic League</a></header><main id="`+MainContentID+`" class="mx-auto max-w-5xl p-6">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
