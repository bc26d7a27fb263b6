package docgen

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// AttachmentFilename sanitizes an arbitrary name for use as an attachment,
// preserving its extension.
func AttachmentFilename(name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return SanitizeFilename(base) + ext
}

// DeliverHTTP streams a rendered document as an attachment response. The
// Content-Disposition carries both a plain filename and an RFC 5987
// percent-encoded variant for clients that cannot take raw non-ASCII.
// The rendered bytes are never persisted server-side.
func DeliverHTTP(w http.ResponseWriter, doc *RenderedDocument) error {
	plain := AttachmentFilename(doc.Filename)
	encoded := url.PathEscape(plain)

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, plain, encoded))

	_, err := w.Write(doc.Data)
	return err
}

// DeliverLocal writes the same bytes a browser download would receive to an
// arbitrary writer; CLI and test callers use it to skip the HTTP layer. The
// filename convention is identical to the server variant.
func DeliverLocal(w io.Writer, doc *RenderedDocument) (string, error) {
	if _, err := w.Write(doc.Data); err != nil {
		return "", err
	}
	return doc.Filename, nil
}
