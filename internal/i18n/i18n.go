// Package i18n negotiates the response language and holds the user-facing
// API messages in English and Russian.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	RateLimited       = "rate_limited"
	InvalidBody       = "invalid_body"
	InvalidField      = "invalid_field"
	Unprocessable     = "unprocessable"
	InvalidEmail      = "invalid_email"
	SubscribeFailed   = "subscribe_failed"
	Subscribed        = "subscribed"
	AlreadySubscribed = "already_subscribed"
)

// Supported lists the response languages; the first is the fallback.
var Supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(Supported)

var translations = map[language.Tag]map[string]string{
	language.English: {
		RateLimited:       "Too many requests, please try again in %d seconds.",
		InvalidBody:       "Request body is not a valid estimate request.",
		InvalidField:      "Invalid value for %s: %s.",
		Unprocessable:     "These measurements do not produce a usable estimate.",
		InvalidEmail:      "Please enter a valid e-mail address.",
		SubscribeFailed:   "Subscription could not be saved, please try again later.",
		Subscribed:        "Thank you for subscribing.",
		AlreadySubscribed: "This address is already subscribed.",
	},
	language.Russian: {
		RateLimited:       "Слишком много запросов. Повторите попытку через %d с.",
		InvalidBody:       "Тело запроса не является корректным запросом на расчёт.",
		InvalidField:      "Недопустимое значение поля %s: %s.",
		Unprocessable:     "Для этих размеров невозможно получить корректный расчёт.",
		InvalidEmail:      "Введите корректный адрес электронной почты.",
		SubscribeFailed:   "Не удалось сохранить подписку, попробуйте позже.",
		Subscribed:        "Спасибо за подписку.",
		AlreadySubscribed: "Этот адрес уже подписан.",
	},
}

// Translator renders message keys in a negotiated language.
type Translator struct {
	cat *catalog.Builder
}

// New builds a Translator with the bundled messages.
func New() *Translator {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// SetString only fails on malformed tags, which are constants here.
			_ = b.SetString(tag, key, msg)
		}
	}
	return &Translator{cat: b}
}

// Sprintf formats key for the given language.
func (t *Translator) Sprintf(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag, message.Catalog(t.cat)).Sprintf(key, args...)
}

// Negotiate picks the supported language that best matches the preferences,
// given in priority order as Accept-Language style strings.
func Negotiate(prefs ...string) language.Tag {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// FromRequest negotiates from the lang query parameter, then Accept-Language.
func FromRequest(r *http.Request) language.Tag {
	return Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}
