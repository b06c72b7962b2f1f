package server

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f6f8fa; margin: 0; }
    .card { max-width: 28rem; margin: 10vh auto; padding: 2.5rem; background: #fff; border-radius: 12px; box-shadow: 0 2px 12px rgba(0,0,0,.08); text-align: center; }
    h1 { font-size: 1.4rem; margin: 0 0 .75rem; }
    p { color: #555; margin: .4rem 0; }
    .ok { color: #1a7f37; }
    .warn { color: #9a6700; }
    code { background: #f0f1f3; padding: .1rem .35rem; border-radius: 4px; }
  </style>
</head>
<body>
  <div class="card">
    <h1 class="{{.Class}}">{{.Heading}}</h1>
    <p>{{.Message}}</p>
    {{if .OrderID}}<p>Order: <code>{{.OrderID}}</code></p>{{end}}
    {{if .SessionID}}<p>Reference: <code>{{.SessionID}}</code></p>{{end}}
  </div>
</body>
</html>
`))

type pageData struct {
	Title     string
	Class     string
	Heading   string
	Message   string
	OrderID   string
	SessionID string
}

func renderPage(c *fiber.Ctx, data pageData) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func successPage(c *fiber.Ctx) error {
	return renderPage(c, pageData{
		Title:     "Payment received",
		Class:     "ok",
		Heading:   "Thank you, your payment was received!",
		Message:   "Your order is now being processed. A confirmation email is on its way.",
		OrderID:   c.Query("order_id"),
		SessionID: c.Query("session_id"),
	})
}

func cancelPage(c *fiber.Ctx) error {
	return renderPage(c, pageData{
		Title:   "Payment cancelled",
		Class:   "warn",
		Heading: "Payment cancelled",
		Message: "No charge was made. You can return to the shop and try again whenever you like.",
		OrderID: c.Query("order_id"),
	})
}
