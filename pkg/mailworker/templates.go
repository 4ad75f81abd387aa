package mailworker

import (
	"bytes"
	"html/template"

	"filetag-api/internal/infrastructure/mq"
)

var (
	uploadCompletedTmpl = template.Must(template.New("upload_completed").Parse(`<p>Hello,</p>
<p>Files have been uploaded for you:</p>
<ul>
{{range .Files}}<li><a href="{{.URI}}">{{.Name}}</a> ({{.ContentLength}} bytes)</li>
{{end}}</ul>
{{if .BrowseURL}}<p>All your files: <a href="{{.BrowseURL}}">{{.BrowseURL}}</a></p>{{end}}
<p>filetag</p>`))

	signInCodeTmpl = template.Must(template.New("signin_code").Parse(`<p>Hello,</p>
<p>Your confirmation code: <b>{{.SignInCode}}</b></p>
<p>If you did not request it, just ignore this message.</p>
<p>filetag</p>`))
)

func renderUploadCompleted(e mq.Event) (string, error) {
	var buf bytes.Buffer
	if err := uploadCompletedTmpl.Execute(&buf, e); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderSignInCode(e mq.Event) (string, error) {
	var buf bytes.Buffer
	if err := signInCodeTmpl.Execute(&buf, e); err != nil {
		return "", err
	}
	return buf.String(), nil
}
