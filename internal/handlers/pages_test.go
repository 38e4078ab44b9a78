package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/messages"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/pageview"
	"github.com/nfrund/authforms/internal/rendering"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/message"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

var pageIDRe = regexp.MustCompile(`/pages/([0-9a-f-]{36})/`)

func setupPageTest(t *testing.T) (*echo.Echo, *message.Printer) {
	t.Helper()

	cat, err := messages.NewCatalog()
	require.NoError(t, err)
	store := pageview.NewMemoryStore(pageview.DefaultTTL)
	t.Cleanup(func() { _ = store.Close() })

	h := handlers.NewPageHandler(store, rendering.NewUniversalRenderer(), cat, "")

	e := echo.New()
	e.Validator = validation.NewEchoValidator()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(testSessionSecret))))
	e.Use(middleware.Owner)
	e.GET("/", h.Home)
	e.POST("/pages/:id/mode", h.Mode)
	e.POST("/pages/:id/:form", h.Submit)
	e.POST("/pages/:id/:form/change", h.Change)
	e.POST("/pages/:id/:form/blur", h.Blur)
	e.POST("/pages/:id/:form/visibility", h.Visibility)

	return e, messages.PrinterFor(cat)
}

// browser carries cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, e *echo.Echo) *browser {
	return &browser{t: t, e: e, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)
	for _, cookie := range rec.Result().Cookies() {
		b.cookies[cookie.Name] = cookie
	}
	return rec
}

func (b *browser) open(target string) (*httptest.ResponseRecorder, string) {
	b.t.Helper()
	rec := b.do(httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(b.t, http.StatusOK, rec.Code)
	m := pageIDRe.FindStringSubmatch(rec.Body.String())
	require.Len(b.t, m, 2, "page id should appear in the form actions")
	return rec, m[1]
}

func (b *browser) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.do(req)
}

func TestHome(t *testing.T) {
	e, _ := setupPageTest(t)

	t.Run("renders both forms in registration mode", func(t *testing.T) {
		b := newBrowser(t, e)
		rec, _ := b.open("/")
		body := rec.Body.String()

		assert.Contains(t, body, `<!doctype html>`)
		assert.Contains(t, body, `id="register-form"`)
		assert.Contains(t, body, `id="login-form"`)
		assert.Contains(t, body, `class="registration-mode"`)
		assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
		assert.Contains(t, b.cookies, "authforms-owner")
	})

	t.Run("opens on the login form when asked", func(t *testing.T) {
		rec, _ := newBrowser(t, e).open("/?mode=login")
		assert.Contains(t, rec.Body.String(), `class="login-mode"`)
	})

	t.Run("every visit is a new page view", func(t *testing.T) {
		b := newBrowser(t, e)
		_, first := b.open("/")
		_, second := b.open("/")
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		rec := newBrowser(t, e).do(httptest.NewRequest(http.MethodGet, "/?mode=admin", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFieldEvents(t *testing.T) {
	e, p := setupPageTest(t)
	b := newBrowser(t, e)
	_, id := b.open("/")
	base := "/pages/" + id + "/register"

	rec := b.post(base+"/change", url.Values{"field": {"email"}, "email": {"not-an-email"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="register-email-error"`)
	assert.NotContains(t, rec.Body.String(), p.Sprintf(messages.EmailInvalid), "typing alone never reports a problem")
	assert.Contains(t, rec.Body.String(), `hx-swap-oob="true"`)

	rec = b.post(base+"/blur", url.Values{"field": {"email"}, "email": {"not-an-email"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), p.Sprintf(messages.EmailInvalid))

	rec = b.post(base+"/change", url.Values{"field": {"email"}, "email": {"ann@example.com"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), p.Sprintf(messages.EmailInvalid), "editing clears the field's error")

	t.Run("late change with the blurred value keeps the error", func(t *testing.T) {
		rec := b.post(base+"/blur", url.Values{"field": {"email"}, "email": {"abc"}}, true)
		require.Contains(t, rec.Body.String(), p.Sprintf(messages.EmailInvalid))

		rec = b.post(base+"/change", url.Values{"field": {"email"}, "email": {"abc"}}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), p.Sprintf(messages.EmailInvalid))

		rec = b.post(base+"/change", url.Values{"field": {"email"}, "email": {"abcd"}}, true)
		assert.NotContains(t, rec.Body.String(), p.Sprintf(messages.EmailInvalid))
	})

	t.Run("blur checks required fields", func(t *testing.T) {
		rec := b.post(base+"/blur", url.Values{"field": {"name"}, "name": {"   "}}, true)
		assert.Contains(t, rec.Body.String(), p.Sprintf(messages.NameRequired))
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		rec := b.post(base+"/change", url.Values{"field": {"age"}}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login form has no email", func(t *testing.T) {
		rec := b.post("/pages/"+id+"/login/change", url.Values{"field": {"email"}, "email": {"x"}}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown form is rejected", func(t *testing.T) {
		rec := b.post("/pages/"+id+"/reset/change", url.Values{"field": {"name"}}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSubmitRegistration(t *testing.T) {
	e, p := setupPageTest(t)
	b := newBrowser(t, e)
	_, id := b.open("/")

	rec := b.post("/pages/"+id+"/register", url.Values{
		"name":             {"Anna"},
		"email":            {"ann@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, p.Sprintf(messages.RegisteredGreeting, "Anna"))
	assert.Contains(t, body, `id="notice"`)
	assert.NotContains(t, body, `value="Anna"`, "an accepted registration is cleared")
	assert.NotContains(t, body, `value="secret123"`)

	t.Run("mismatched passwords are reported", func(t *testing.T) {
		rec := b.post("/pages/"+id+"/register", url.Values{
			"name":             {"Anna"},
			"email":            {"ann@example.com"},
			"password":         {"secret123"},
			"password_confirm": {"secret124"},
		}, true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), p.Sprintf(messages.ConfirmMismatch))
		assert.NotContains(t, rec.Body.String(), p.Sprintf(messages.RegisteredGreeting, "Anna"))
		assert.Contains(t, rec.Body.String(), `value="Anna"`, "a rejected form keeps its values")
	})
}

func TestSubmitLogin(t *testing.T) {
	e, p := setupPageTest(t)
	b := newBrowser(t, e)
	_, id := b.open("/?mode=login")

	rec := b.post("/pages/"+id+"/login", url.Values{"name": {"R2D2"}, "password": {"short"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), p.Sprintf(messages.NameInvalid))
	assert.Contains(t, rec.Body.String(), p.Sprintf(messages.PasswordTooShort))

	rec = b.post("/pages/"+id+"/login", url.Values{"name": {"Anna"}, "password": {"secret123"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), p.Sprintf(messages.LoginGreeting, "Anna"))
	assert.NotContains(t, rec.Body.String(), `value="Anna"`, "an accepted login is cleared")
}

func TestSubmitWithoutJavaScript(t *testing.T) {
	e, p := setupPageTest(t)
	b := newBrowser(t, e)
	_, id := b.open("/")

	rec := b.post("/pages/"+id+"/register", url.Values{"name": {"Anna"}}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `<!doctype html>`)
	assert.Contains(t, rec.Body.String(), p.Sprintf(messages.EmailRequired))

	rec = b.post("/pages/"+id+"/register", url.Values{
		"name":             {"Anna"},
		"email":            {"ann@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
	}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<!doctype html>`)
	assert.Contains(t, rec.Body.String(), p.Sprintf(messages.RegisteredGreeting, "Anna"))
}

func TestModeSwitchKeepsValues(t *testing.T) {
	e, _ := setupPageTest(t)
	b := newBrowser(t, e)
	_, id := b.open("/")

	rec := b.post("/pages/"+id+"/mode", url.Values{"mode": {"login"}, "name": {"Anna"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="login-mode"`)
	assert.NotContains(t, rec.Body.String(), `<!doctype html>`)

	rec = b.post("/pages/"+id+"/mode", url.Values{"mode": {"registration"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="registration-mode"`)
	assert.Contains(t, rec.Body.String(), `value="Anna"`)

	t.Run("rejects an unknown mode", func(t *testing.T) {
		rec := b.post("/pages/"+id+"/mode", url.Values{"mode": {"admin"}}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVisibility(t *testing.T) {
	e, _ := setupPageTest(t)
	b := newBrowser(t, e)
	_, id := b.open("/")

	rec := b.post("/pages/"+id+"/register/visibility", url.Values{"show_password": {"true"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="register-password" name="password" class="input-registr input-password" type="text"`)
	assert.Contains(t, rec.Body.String(), `checked`)

	rec = b.post("/pages/"+id+"/register/visibility", url.Values{}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="register-password" name="password" class="input-registr input-password" type="password"`)
}

func TestForeignOrExpiredPage(t *testing.T) {
	e, p := setupPageTest(t)
	owner := newBrowser(t, e)
	_, id := owner.open("/")

	t.Run("another browser cannot use the page", func(t *testing.T) {
		stranger := newBrowser(t, e)
		stranger.open("/")

		rec := stranger.post("/pages/"+id+"/register/change", url.Values{"field": {"name"}, "name": {"x"}}, true)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))

		home, _ := stranger.open("/")
		assert.Contains(t, home.Body.String(), p.Sprintf(messages.PageNotFound))
	})

	t.Run("plain posts are redirected", func(t *testing.T) {
		rec := owner.post("/pages/00000000-0000-0000-0000-000000000000/register", url.Values{}, false)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("malformed ids are rejected", func(t *testing.T) {
		rec := owner.post("/pages/nope/register", url.Values{}, true)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
