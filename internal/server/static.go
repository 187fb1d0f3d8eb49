package server

import (
	"errors"
	"html/template"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// errEscapesRoot は解決後のパスが配信ルートの外を指していることを表す
var errEscapesRoot = errors.New("パスが配信ルートの外を指している")

// indexNames はディレクトリで一覧より優先して配信するファイル名
var indexNames = []string{"index.html", "index.htm"}

// handleStatic はGET/HEADリクエストを静的ファイルとして解決する
func (s *Server) handleStatic(c *gin.Context) {
	urlPath := c.Param("filepath")

	target, err := s.resolve(urlPath)
	if err != nil {
		// ルート外への脱出は存在しないパスとして扱う
		s.renderError(c, http.StatusNotFound, urlPath)
		return
	}

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.renderError(c, http.StatusNotFound, urlPath)
		return
	case errors.Is(err, fs.ErrPermission):
		s.renderError(c, http.StatusForbidden, urlPath)
		return
	case err != nil:
		s.renderError(c, http.StatusInternalServerError, urlPath)
		return
	}

	if info.IsDir() {
		s.serveDirectory(c, target, urlPath)
		return
	}

	s.serveFile(c, target)
}

// resolve はURLパスを配信ルート配下の絶対パスへ解決する
func (s *Server) resolve(urlPath string) (string, error) {
	// 先頭にスラッシュを付けてからCleanすることで ".." がルートを越えられない
	cleaned := path.Clean("/" + urlPath)
	target := filepath.Join(s.config.Static.Root, filepath.FromSlash(cleaned))

	// 解決結果がルート配下であることの確認
	root := filepath.Clean(s.config.Static.Root)
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", errEscapesRoot
	}
	return target, nil
}

// serveFile はファイル本体を配信する
// Range・HEAD・Content-Lengthの処理はhttp.ServeContentに任せる
func (s *Server) serveFile(c *gin.Context, target string) {
	f, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			s.renderError(c, http.StatusForbidden, c.Request.URL.Path)
			return
		}
		s.renderError(c, http.StatusInternalServerError, c.Request.URL.Path)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, c.Request.URL.Path)
		return
	}

	c.Header("Content-Type", contentType(target))
	http.ServeContent(c.Writer, c.Request, filepath.Base(target), info.ModTime(), f)
}

// contentType は拡張子からContent-Typeを推定する
// 未知の拡張子の場合はファイル内容から判定する
func contentType(target string) string {
	if ctype := mime.TypeByExtension(filepath.Ext(target)); ctype != "" {
		return ctype
	}
	if mtype, err := mimetype.DetectFile(target); err == nil {
		return mtype.String()
	}
	return "application/octet-stream"
}

// serveDirectory はディレクトリへのリクエストを処理する
// index.htmlがあればそれを配信し、なければ一覧ページを生成する
func (s *Server) serveDirectory(c *gin.Context, target, urlPath string) {
	// 末尾スラッシュなしのディレクトリはスラッシュ付きへリダイレクトする
	if !strings.HasSuffix(c.Request.URL.Path, "/") {
		redirect := c.Request.URL.Path + "/"
		if q := c.Request.URL.RawQuery; q != "" {
			redirect += "?" + q
		}
		c.Redirect(http.StatusMovedPermanently, redirect)
		return
	}

	for _, name := range indexNames {
		index := filepath.Join(target, name)
		if info, err := os.Stat(index); err == nil && !info.IsDir() {
			s.serveFile(c, index)
			return
		}
	}

	s.renderListing(c, target, urlPath)
}

// listingEntry はディレクトリ一覧ページの1項目
type listingEntry struct {
	Name string
	Href string
}

var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<title>{{.Path}} のディレクトリ一覧</title>
</head>
<body>
<h1>{{.Path}} のディレクトリ一覧</h1>
<hr>
<ul>
{{range .Entries}}<li><a href="{{.Href}}">{{.Name}}</a></li>
{{end}}</ul>
<hr>
</body>
</html>
`))

// renderListing はディレクトリ直下のエントリ一覧ページを生成する
func (s *Server) renderListing(c *gin.Context, target, urlPath string) {
	dirEntries, err := os.ReadDir(target)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			s.renderError(c, http.StatusForbidden, urlPath)
			return
		}
		s.renderError(c, http.StatusInternalServerError, urlPath)
		return
	}

	entries := make([]listingEntry, 0, len(dirEntries))
	for _, e := range dirEntries {
		name := e.Name()
		// ディレクトリはスラッシュ付きで表示・リンクする
		if e.IsDir() {
			name += "/"
		}
		entries = append(entries, listingEntry{Name: name, Href: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if c.Request.Method == http.MethodHead {
		return
	}
	if err := listingTmpl.Execute(c.Writer, gin.H{"Path": urlPath, "Entries": entries}); err != nil {
		log.Printf("一覧ページの出力に失敗: %v", err)
	}
}

var errorTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="UTF-8">
<title>{{.Status}} {{.Text}}</title>
</head>
<body>
<h1>{{.Status}} {{.Text}}</h1>
<p>リクエストされたパス: {{.Path}}</p>
</body>
</html>
`))

// renderError はエラーページを生成する
// リクエスト単位のエラーは必ずここでレスポンスに変換され、プロセスには波及しない
func (s *Server) renderError(c *gin.Context, status int, urlPath string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if c.Request.Method == http.MethodHead {
		return
	}
	if err := errorTmpl.Execute(c.Writer, gin.H{
		"Status": status,
		"Text":   http.StatusText(status),
		"Path":   urlPath,
	}); err != nil {
		log.Printf("エラーページの出力に失敗: %v", err)
	}
}
