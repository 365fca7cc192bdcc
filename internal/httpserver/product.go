package httpserver

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_store/internal/search"
	"github.com/Skotchmaster/shoe_store/internal/service"
	"github.com/Skotchmaster/shoe_store/internal/transport"
	"github.com/Skotchmaster/shoe_store/pkg/logging"
)

const uploadsPrefix = "/uploads/"

type CatalogHTTP struct {
	Svc       *service.CatalogService
	UploadDir string
	Now       func() time.Time
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.List(ctx, transport.ParseProductFilter(c.QueryParams()))
	if err != nil {
		return fail(l, "list_products", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	p, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(l, "get_product", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if page < 1 {
		page = 1
	}
	_, size = search.Calculate(page, size)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_products", err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	in, upload, err := h.bindProduct(c)
	if err != nil {
		return badBody(l, "create_product", err)
	}
	p, err := h.Svc.Create(ctx, in)
	if err != nil {
		h.discardUpload(l, upload)
		return fail(l, "create_product", err)
	}
	l.Info("create_product_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	in, upload, err := h.bindProduct(c)
	if err != nil {
		return badBody(l, "update_product", err)
	}
	p, err := h.Svc.Update(ctx, c.Param("id"), in)
	if err != nil {
		h.discardUpload(l, upload)
		return fail(l, "update_product", err)
	}
	l.Info("update_product_success", "product_id", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	if err := h.Svc.Delete(ctx, c.Param("id")); err != nil {
		return fail(l, "delete_product", err)
	}
	l.Info("delete_product_success", "product_id", c.Param("id"))
	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}

// bindProduct reads a JSON body or a multipart form with an optional "image"
// file. The returned upload is the stored file name, empty when none was saved.
func (h *CatalogHTTP) bindProduct(c echo.Context) (transport.ProductInput, string, error) {
	var in transport.ProductInput
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		err := c.Bind(&in)
		return in, "", err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, "", err
	}
	if in, err = productFromForm(form.Value); err != nil {
		return in, "", err
	}
	if files := form.File["image"]; len(files) > 0 {
		name, err := h.saveUpload(files[0])
		if err != nil {
			return in, "", err
		}
		image := uploadsPrefix + name
		in.Image = &image
		return in, name, nil
	}
	return in, "", nil
}

func (h *CatalogHTTP) discardUpload(l *slog.Logger, name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(h.UploadDir, name)); err != nil {
		l.Warn("discard_upload_error", "file", name, "error", err)
	}
}

func productFromForm(v map[string][]string) (transport.ProductInput, error) {
	var (
		in  transport.ProductInput
		err error
	)
	str := func(key string) *string {
		if vals, ok := v[key]; ok && len(vals) > 0 {
			s := vals[0]
			return &s
		}
		return nil
	}
	list := func(key string) transport.StringList {
		if vals, ok := v[key]; ok {
			return transport.SplitTokens(vals...)
		}
		return nil
	}
	num := func(key string) *float64 {
		s := str(key)
		if s == nil || strings.TrimSpace(*s) == "" || err != nil {
			return nil
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(*s), 64)
		if perr != nil {
			err = fmt.Errorf("%s: %w", key, perr)
			return nil
		}
		return &f
	}
	integer := func(key string) *int {
		f := num(key)
		if f == nil {
			return nil
		}
		n := int(*f)
		return &n
	}

	in.Name = str("name")
	in.Description = str("description")
	in.Image = str("image")
	in.Brand = str("brand")
	in.Gender = str("gender")
	in.Price = num("price")
	in.OriginalPrice = num("originalPrice")
	in.Rating = num("rating")
	in.Quantity = integer("quantity")
	in.Reviews = integer("reviews")
	in.Sizes = list("sizes")
	in.Colors = list("colors")
	in.Features = list("features")
	in.Category = list("category")
	if s := str("inStock"); s != nil {
		b := strings.EqualFold(strings.TrimSpace(*s), "true")
		in.InStock = &b
	}
	return in, err
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func uploadName(original string, now time.Time) string {
	ext := filepath.Ext(filepath.Base(original))
	base := strings.TrimSuffix(filepath.Base(original), ext)
	ext = unsafeFileChars.ReplaceAllString(strings.TrimPrefix(ext, "."), "")
	name := fmt.Sprintf("%d_%s", now.UnixMilli(), unsafeFileChars.ReplaceAllString(base, "_"))
	if ext != "" {
		name += "." + ext
	}
	return name
}

func (h *CatalogHTTP) saveUpload(fh *multipart.FileHeader) (string, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uploadName(fh.Filename, now())
	dst, err := os.Create(filepath.Join(h.UploadDir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	return name, dst.Close()
}
