package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	return WithLocalizer(context.Background(), NewLocalizer(lang))
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "SubjectNotFound"); got != "Subject not found." {
		t.Errorf("T(SubjectNotFound) = %q", got)
	}
	if got := T(ctx, "StudentMenu"); got != "1. Take Exam\n2. Show Grades\n3. Logout" {
		t.Errorf("T(StudentMenu) = %q", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	if got := T(ctx, "SubjectNotFound"); got != "Предмет не найден." {
		t.Errorf("T(SubjectNotFound) = %q", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Tp(ctx, "ExamsAvailable", 1); got != "1 exam available:" {
		t.Errorf("Tp(ExamsAvailable, 1) = %q", got)
	}
	if got := Tp(ctx, "ExamsAvailable", 3); got != "3 exams available:" {
		t.Errorf("Tp(ExamsAvailable, 3) = %q", got)
	}

	ctx = initLang(t, "ru")
	if got := Tp(ctx, "ExamsAvailable", 3); got != "Доступно 3 экзамена:" {
		t.Errorf("Tp(ExamsAvailable, 3) ru = %q", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "AnswerWrong", map[string]any{"N": 2, "Text": "London"})
	if got != "Question 2: your answer is wrong. The correct answer is: London" {
		t.Errorf("Td(AnswerWrong) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestFallbackWithoutLocalizer(t *testing.T) {
	initLang(t, "ru")

	if got := T(context.Background(), "Goodbye"); got != "До свидания!" {
		t.Errorf("T(Goodbye) without localizer = %q", got)
	}
}

func TestMiddlewareAcceptLanguage(t *testing.T) {
	initLang(t, "en")

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "Goodbye")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "До свидания!" {
		t.Errorf("ru request got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "Goodbye!" {
		t.Errorf("request without header got %q", got)
	}
}
