package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/amankharwar575/kodJobs/internal/middleware"
	"github.com/amankharwar575/kodJobs/internal/server"
	"github.com/amankharwar575/kodJobs/internal/user"
)

type loginRq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Dob      string `json:"dob"`
}

func LoginHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &loginRq{}
		if err := decodeBody(r, req); err != nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
			svr.Message(w, http.StatusBadRequest, "Username and password are required")
			return
		}
		if svr.GetConfig().SeedTestUser {
			n, err := userRepo.Count()
			if err != nil {
				svr.Log(err, "unable to count users")
				svr.Message(w, http.StatusInternalServerError, "Login failed")
				return
			}
			if n == 0 {
				created, err := userRepo.SeedTestUser(r.Context())
				if err != nil {
					svr.Log(err, "unable to seed test user")
					svr.Message(w, http.StatusInternalServerError, "Login failed")
					return
				}
				if created {
					logger := svr.Logger()
					logger.Info().Msgf("created test user %s/%s", user.TestUsername, user.TestPassword)
				}
			}
		}
		u, err := userRepo.Authenticate(req.Username, req.Password)
		if err == user.ErrInvalidCredentials {
			svr.Message(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			svr.Log(err, "unable to authenticate user")
			svr.Message(w, http.StatusInternalServerError, "Login failed")
			return
		}
		ttl := svr.GetConfig().TokenExpiration
		tk, err := middleware.NewToken(u.ID, svr.GetJWTSigningKey(), ttl)
		if err != nil {
			svr.Log(err, "unable to sign jwt")
			svr.Message(w, http.StatusInternalServerError, "Login failed")
			return
		}
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err != nil {
			svr.Log(err, "unable to get session cookie from request")
		} else {
			sess.Values["jwt"] = tk
			sess.Options.MaxAge = int(ttl.Seconds())
			sess.Options.HttpOnly = true
			sess.Options.Secure = svr.GetConfig().Env != "dev"
			if err := sess.Save(r, w); err != nil {
				svr.Log(err, "unable to save jwt into session cookie")
			}
		}
		svr.JSON(w, http.StatusOK, map[string]string{
			"token":    tk,
			"userId":   u.ID,
			"username": u.Username,
		})
	}
}

func RegisterHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &registerRq{}
		if err := decodeBody(r, req); err != nil {
			svr.Message(w, http.StatusBadRequest, "No data provided")
			return
		}
		required := []struct{ name, value string }{
			{"username", userRepo.Sanitize(req.Username)},
			{"email", strings.TrimSpace(req.Email)},
			{"password", req.Password},
		}
		for _, f := range required {
			if f.value == "" {
				svr.Message(w, http.StatusBadRequest, fmt.Sprintf("Missing field: %s", f.name))
				return
			}
		}
		if !svr.IsEmail(strings.TrimSpace(req.Email)) {
			svr.Message(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		u, err := userRepo.CreateUser(r.Context(), req.Username, req.Email, req.Password, req.Dob)
		switch err {
		case nil:
		case user.ErrEmailTaken:
			svr.Message(w, http.StatusConflict, "Email already registered")
			return
		case user.ErrUsernameTaken:
			svr.Message(w, http.StatusConflict, "Username already taken")
			return
		default:
			svr.Log(err, "unable to create user")
			svr.Message(w, http.StatusInternalServerError, "Registration failed")
			return
		}
		svr.JSON(w, http.StatusCreated, map[string]string{
			"message": "Registration successful",
			"userId":  u.ID,
		})
	}
}

func LogoutHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := svr.SessionStore.Get(r, middleware.SessionName)
		if err != nil {
			svr.Log(err, "unable to get session cookie from request")
			svr.Message(w, http.StatusOK, "Logged out")
			return
		}
		sess.Options.MaxAge = -1
		if err := sess.Save(r, w); err != nil {
			svr.Log(err, "unable to clear session cookie")
		}
		svr.Message(w, http.StatusOK, "Logged out")
	}
}

func VerifyHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		u, err := userRepo.GetUser(userID)
		if err == user.ErrNotFound {
			svr.Message(w, http.StatusUnauthorized, "Invalid user")
			return
		}
		if err != nil {
			svr.Log(err, "unable to retrieve user")
			svr.Message(w, http.StatusInternalServerError, "Unable to verify user")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{"user": u.Profile()})
	}
}
