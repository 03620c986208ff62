package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSRFTokenFromScripts(t *testing.T) {
	tests := []struct {
		name    string
		scripts []string
		want    string
	}{
		{
			name:    "escaped quotes",
			scripts: []string{`{\"CSRF_TOKEN\":\"abc123-def456\"}`},
			want:    "abc123-def456",
		},
		{
			name:    "plain quotes",
			scripts: []string{`window.__STATE__ = {"CSRF_TOKEN":"deadbeef-1234"};`},
			want:    "deadbeef-1234",
		},
		{
			name: "escaped wins over plain in the same script",
			scripts: []string{
				`{\"CSRF_TOKEN\":\"aaaa1111\"} {"CSRF_TOKEN":"bbbb2222"}`,
			},
			want: "aaaa1111",
		},
		{
			name: "token in a later script",
			scripts: []string{
				`console.log("nothing here");`,
				`{"CSRF_TOKEN":"cafe0123"}`,
			},
			want: "cafe0123",
		},
		{
			name:    "no token anywhere",
			scripts: []string{`var x = 1;`, `var y = 2;`},
			want:    "",
		},
		{
			name:    "uppercase hex is not a token",
			scripts: []string{`{"CSRF_TOKEN":"ABCDEF"}`},
			want:    "",
		},
		{
			name:    "no scripts",
			scripts: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSRFTokenFromScripts(tt.scripts))
		})
	}
}

func TestCSRFTokenFromHTML(t *testing.T) {
	page := `<html><head>
		<script>var unrelated = true;</script>
		<script>window.__STATE__ = {"CSRF_TOKEN":"75a8b2c1-aaaa-bbbb-cccc-123456789012"};</script>
	</head><body></body></html>`

	assert.Equal(t, "75a8b2c1-aaaa-bbbb-cccc-123456789012", CSRFTokenFromHTML(page))
	assert.Equal(t, "", CSRFTokenFromHTML(`<html><body><p>no scripts</p></body></html>`))
}
