package http

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/Xausdorf/khqr-offline/internal/domain/khqr"
	"github.com/Xausdorf/khqr-offline/internal/usecase/form"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Offline KHQR</title>
<style>
body { font-family: sans-serif; max-width: 420px; margin: 20px auto; padding: 0 12px; }
fieldset { margin-bottom: 12px; }
input, select, button { width: 100%; padding: 8px; margin: 4px 0; box-sizing: border-box; }
.error { color: #c00; font-weight: 600; }
.notice { color: #080; }
.qr { width: 250px; height: 250px; image-rendering: pixelated; display: block; margin: 20px auto 0; }
.payload { font-size: 12px; background: #eee; padding: 12px; border-radius: 8px; word-break: break-all; user-select: all; }
</style>
</head>
<body>
<h1>Offline KHQR</h1>
{{if .Snapshot.ErrorMessage}}<p class="error">{{.Snapshot.ErrorMessage}}</p>{{end}}
{{if .Saved}}<p class="notice">Saved QR payload locally</p>{{end}}
<form method="post" action="/generate">
<fieldset>
<legend>Merchant Info</legend>
<input name="store_name" placeholder="Store Name" value="{{.Snapshot.StoreName}}">
<input name="account_information" placeholder="Account Information" inputmode="numeric" value="{{.Snapshot.AccountInformation}}">
</fieldset>
<fieldset>
<legend>Amount (Offline Input)</legend>
<input name="amount" placeholder="Enter Amount" inputmode="decimal" value="{{.Snapshot.AmountText}}">
<select name="currency">
{{range .Currencies}}<option value="{{.}}"{{if eq . $.Snapshot.Currency}} selected{{end}}>{{.}}</option>{{end}}
</select>
</fieldset>
<button type="submit">Generate KHQR Offline</button>
</form>
{{if .Snapshot.Payload}}
{{if .Snapshot.Image}}<img class="qr" src="/api/form/qr.png?v={{.Snapshot.PayloadMD5}}" alt="KHQR">{{end}}
<h3>KHQR Payload:</h3>
<div class="payload">{{.Snapshot.Payload}}</div>
<form method="post" action="/save">
<button type="submit">Save QR Payload Locally</button>
</form>
{{end}}
</body>
</html>
`))

type pageData struct {
	Snapshot   form.Snapshot
	Currencies []khqr.Currency
	Saved      bool
}

func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Snapshot:   h.form.Snapshot(),
		Currencies: []khqr.Currency{khqr.CurrencyUSD, khqr.CurrencyKHR},
		Saved:      r.URL.Query().Get("saved") == "1",
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("render page failed", zap.Error(err))
	}
}

func (h *Handler) HandlePageGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	currency, err := khqr.ParseCurrency(r.PostForm.Get("currency"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	storeName := r.PostForm.Get("store_name")
	accountInfo := r.PostForm.Get("account_information")
	amount := r.PostForm.Get("amount")
	h.form.GenerateWith(form.Input{
		StoreName:          &storeName,
		AccountInformation: &accountInfo,
		Amount:             &amount,
		Currency:           &currency,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) HandlePageSave(w http.ResponseWriter, r *http.Request) {
	if err := h.form.Save(r.Context()); err != nil {
		h.logger.Warn("save from page failed", zap.Error(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/?saved=1", http.StatusSeeOther)
}
