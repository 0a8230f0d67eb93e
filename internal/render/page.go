package render

import (
	"html/template"
	"io"

	"github.com/Belphemur/ShowShelf/internal/models"
)

// PageData is everything the card page needs.
type PageData struct {
	Shows   []models.Show
	Message string // Error shown above the add form, if any
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ShowShelf</title>
<style>
body{font-family:sans-serif;margin:2rem}
.cards{display:flex;flex-wrap:wrap;gap:1rem}
.card{border:1px solid #ccc;border-radius:6px;padding:1rem;min-width:12rem}
.btn-light-green{background:#c8f7c5}
.btn-light-red{background:#f7c5c5}
.error{color:#a00}
</style>
</head>
<body>
<h1>ShowShelf</h1>
<form class="add-show" method="post" action="/shows">
<input name="title" placeholder="Title" required>
<input name="episodes" placeholder="Episodes" inputmode="numeric">
<label><input type="checkbox" name="isWatched" value="true"> Watched</label>
<button type="submit">Add</button>
</form>
{{with .Message}}<p class="error">{{.}}</p>{{end}}
<div class="cards">
{{range .Cards}}<div class="card" data-title="{{.Title}}">
<h2>{{.Heading}}</h2>
<p class="episodes">{{.Episodes}}</p>
<form class="toggle" method="post" action="/shows/toggle"><input type="hidden" name="title" value="{{.Title}}"><button type="submit" class="{{.WatchedClass}}">{{.WatchedLabel}}</button></form>
<form class="remove" method="post" action="/shows/remove"><input type="hidden" name="title" value="{{.Title}}"><button type="submit" class="remove">Remove</button></form>
</div>
{{else}}<p class="empty">No shows yet.</p>
{{end}}</div>
</body>
</html>
`))

// Page writes the full HTML card page.
func Page(w io.Writer, data PageData) error {
	return pageTemplate.Execute(w, struct {
		Cards   []Card
		Message string
	}{
		Cards:   Cards(data.Shows),
		Message: data.Message,
	})
}
