// Package messages holds every piece of user-facing text. Keys are English and
// the catalog carries the Russian wording the page is shown in.
package messages

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Locale is the only language the page is rendered in.
var Locale = language.Russian

// Validation messages.
const (
	NameRequired     = "Name is required"
	NameInvalid      = "Invalid name"
	EmailRequired    = "Email is required"
	EmailInvalid     = "Invalid email"
	PasswordRequired = "Password is required"
	PasswordTooShort = "Password must be at least 8 characters"
	ConfirmRequired  = "Repeat the password"
	ConfirmMismatch  = "Passwords do not match"
)

// Greetings shown after a successful submission. Both take the submitted name.
const (
	RegisteredGreeting = "Thanks for registering, %s!"
	LoginGreeting      = "Welcome, %s!"
)

// Page text.
const (
	RegisterTitle      = "Registration"
	LoginTitle         = "Login"
	NameLabel          = "Enter name"
	EmailLabel         = "Enter email"
	PasswordLabel      = "Enter password"
	ConfirmLabel       = "Repeat password"
	ShowPasswordLabel  = "Show password"
	RegisterButton     = "Signup"
	RegisterBusyButton = "Processing..."
	LoginButton        = "Sign in"
	LoginBusyButton    = "Signing in..."
	HaveAccountPrompt  = "Already have an account?"
	NoAccountPrompt    = "No account?"
	SwitchToLogin      = "Log in"
	SwitchToRegister   = "Sign up"
	BackgroundAlt      = "BackGround"
	PageNotFound       = "This page has expired, reload to start over"
	TooManySubmissions = "Too many attempts, try again later"
)

var russian = map[string]string{
	NameRequired:       "Имя обязательно",
	NameInvalid:        "Некорректное имя",
	EmailRequired:      "Email обязателен",
	EmailInvalid:       "Некорректный email",
	PasswordRequired:   "Пароль обязателен",
	PasswordTooShort:   "Пароль должен быть не менее 8 символов",
	ConfirmRequired:    "Повторите пароль",
	ConfirmMismatch:    "Пароли не совпадают",
	RegisteredGreeting: "Спасибо за регистрацию, %s!",
	LoginGreeting:      "Добро пожаловать, %s!",
	RegisterTitle:      "Регистрация",
	LoginTitle:         "Вход",
	NameLabel:          "Введите Имя",
	EmailLabel:         "Введите Email",
	PasswordLabel:      "Введите пароль",
	ConfirmLabel:       "Повторите пароль",
	ShowPasswordLabel:  "Показать пароль",
	RegisterButton:     "Signup",
	RegisterBusyButton: "Обработка...",
	LoginButton:        "Войти",
	LoginBusyButton:    "Вход...",
	HaveAccountPrompt:  "У вас уже есть учетная запись?",
	NoAccountPrompt:    "Нет аккаунта?",
	SwitchToLogin:      "Войти",
	SwitchToRegister:   "Зарегистрироваться",
	BackgroundAlt:      "BackGround",
	PageNotFound:       "Страница устарела, обновите её, чтобы начать заново",
	TooManySubmissions: "Слишком много попыток, попробуйте позже",
}

// NewCatalog builds the message catalog for Locale.
func NewCatalog() (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(Locale))
	for key, text := range russian {
		if err := b.SetString(Locale, key, text); err != nil {
			return nil, fmt.Errorf("set message %q: %w", key, err)
		}
	}
	return b, nil
}

// NewPrinter returns a printer for Locale backed by NewCatalog.
func NewPrinter() (*message.Printer, error) {
	cat, err := NewCatalog()
	if err != nil {
		return nil, err
	}
	return PrinterFor(cat), nil
}

// PrinterFor returns a printer for Locale backed by cat.
func PrinterFor(cat catalog.Catalog) *message.Printer {
	return message.NewPrinter(Locale, message.Catalog(cat))
}
