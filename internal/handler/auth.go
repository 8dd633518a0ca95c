package handler

import (
	"net/http"

	"github.com/pavelanni/examhall/internal/model"
)

// requireRole authenticates HTTP Basic credentials against the given roles
// in order and stores the first matching user in the request context.
func (h *Handler) requireRole(roles ...model.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if ok {
				for _, role := range roles {
					user, err := h.school.Authenticate(username, password, role)
					if err != nil {
						continue
					}
					next.ServeHTTP(w, r.WithContext(model.ContextWithUser(r.Context(), user)))
					return
				}
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="examhall", charset="UTF-8"`)
			writeError(w, r, model.ErrAuthFailure)
		})
	}
}

func currentTeacher(r *http.Request) (*model.Teacher, bool) {
	t, ok := model.UserFromContext(r.Context()).(*model.Teacher)
	return t, ok
}

func currentStudent(r *http.Request) (*model.Student, bool) {
	s, ok := model.UserFromContext(r.Context()).(*model.Student)
	return s, ok
}
