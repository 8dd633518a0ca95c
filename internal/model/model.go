package model

import (
	"context"
	"strings"
)

// UserRole is the access level of a user.
type UserRole string

const (
	// UserRoleTeacher authors exams and reviews grades.
	UserRoleTeacher UserRole = "teacher"
	// UserRoleStudent takes exams.
	UserRoleStudent UserRole = "student"
)

// ParseUserRole accepts role names and the legacy menu numbers (1 teacher, 2 student).
func ParseUserRole(s string) (UserRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(UserRoleTeacher), "1":
		return UserRoleTeacher, nil
	case string(UserRoleStudent), "2":
		return UserRoleStudent, nil
	}
	return "", ErrAuthFailure
}

// User is implemented by *Teacher and *Student.
type User interface {
	ID() int
	Username() string
	PasswordHash() string
	Role() UserRole
}

type userCtxKey struct{}

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) User {
	u, _ := ctx.Value(userCtxKey{}).(User)
	return u
}
