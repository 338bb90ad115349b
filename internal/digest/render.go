package digest

import (
	"fmt"
	"html"
	"strings"
)

// Render produces the HTML body of the digest email: a heading, an intro
// line and one block per article with a linked title and its source. It is
// deterministic for a given article order and has no side effects.
func Render(articles []Article) string {
	var b strings.Builder

	b.WriteString(`<html>
<body style="font-family: sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: auto; background: #ffffff; padding: 20px; border-radius: 10px; box-shadow: 0 4px 8px rgba(0,0,0,0.1);">
        <h1 style="color: #333; text-align: center;">Daily Finance &amp; Crypto Digest</h1>
        <p style="color: #666; text-align: center;">Here are today's top articles on banking, finance, and crypto from the DACH and MENA regions.</p>
        <hr style="border: 0; height: 1px; background: #ddd; margin: 20px 0;">
`)

	if len(articles) == 0 {
		b.WriteString("        <p style='text-align: center; color: #888;'>No new articles found today. Check back tomorrow!</p>\n")
	} else {
		for _, a := range articles {
			b.WriteString(fmt.Sprintf(`        <div style="border-bottom: 1px solid #eee; padding: 15px 0;">
            <h2 style="font-size: 18px; color: #007bff;"><a href="%s" style="text-decoration: none; color: #007bff;">%s</a></h2>
            <p style="font-size: 14px; color: #555;"><strong>Source:</strong> %s</p>
        </div>
`, html.EscapeString(a.Link), html.EscapeString(a.Title), html.EscapeString(a.Source)))
		}
	}

	b.WriteString(`    </div>
</body>
</html>
`)
	return b.String()
}
