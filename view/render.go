package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"estateinsights/models"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

var (
	md     = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))
	policy = bluemonday.UGCPolicy()
)

// PageData is everything the dashboard page shows for one session.
type PageData struct {
	Title       string
	AreaInput   string
	Loading     bool
	Error       string
	CanDownload bool
	Result      *ResultView
	Chat        ChatView
	// OOB marks the dashboard block for an htmx out-of-band swap.
	OOB bool
}

type ChatView struct {
	Messages []MessageView
	Typing   bool
}

type MessageView struct {
	Sender string
	IsUser bool
	Avatar string
	Body   template.HTML
	Time   string
}

// BuildPage assembles the page from the root state and the chat transcript.
func BuildPage(state models.DashboardState, msgs []models.ChatMessage, typing bool) PageData {
	return PageData{
		Title:       "Real Estate Insights Chatbot",
		AreaInput:   state.AreaInput,
		Loading:     state.Loading,
		Error:       state.Error,
		CanDownload: state.HasResult(),
		Result:      BuildResult(state.Result, state.AreaInput),
		Chat:        BuildChat(msgs, typing),
	}
}

func BuildChat(msgs []models.ChatMessage, typing bool) ChatView {
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		mv := MessageView{
			Sender: string(m.Sender),
			IsUser: m.IsUser(),
			Avatar: "🤖",
		}
		if !m.Timestamp.IsZero() {
			mv.Time = m.Timestamp.Format("15:04")
		}
		if mv.IsUser {
			mv.Avatar = "🧑‍💻"
			mv.Body = template.HTML(template.HTMLEscapeString(m.Text))
		} else {
			mv.Body = Markdown(m.Text)
		}
		views = append(views, mv)
	}
	return ChatView{Messages: views, Typing: typing}
}

// Markdown renders bot text to sanitised HTML.
func Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// Templates parses the embedded page and fragment templates.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templatesFS, "templates/*.html")
}

// MustTemplates is Templates for start-up code.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static returns the stylesheet directory.
func Static() (http.FileSystem, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}

// MustStatic is Static for start-up code.
func MustStatic() http.FileSystem {
	static, err := Static()
	if err != nil {
		panic(err)
	}
	return static
}

// RenderResult writes the result panel fragment.
func RenderResult(w io.Writer, tmpl *template.Template, rv *ResultView) error {
	return tmpl.ExecuteTemplate(w, "result", rv)
}
