package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/mapleleafu/lanerunner/models"
	"github.com/mapleleafu/lanerunner/repository"
	"github.com/mapleleafu/lanerunner/responses"
	"github.com/mapleleafu/lanerunner/utils"
)

const (
	accessTokenTTL  = 72 * time.Hour
	refreshTokenTTL = 180 * 24 * time.Hour
	refreshCookie   = "refresh_token"
)

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}

	if len(user.Username) < 3 || len(user.Username) > 50 {
		utils.HandleError(w, responses.BadRequestError{Msg: "Username must be between 3 and 50 characters."})
		return
	}

	if len(user.Password) < 3 || len(user.Password) > 50 {
		utils.HandleError(w, responses.BadRequestError{Msg: "Password must be between 3 and 50 characters."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to hash password."})
		return
	}

	err = s.Users.Create(r.Context(), user.Username, string(hashedPassword))
	if errors.Is(err, repository.ErrDuplicate) {
		utils.HandleError(w, responses.ConflictError{Msg: "Username is already taken."})
		return
	}
	if err != nil {
		log.Println(err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to create user."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "User created successfully."}))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var loginInfo models.User
	if err := json.NewDecoder(r.Body).Decode(&loginInfo); err != nil {
		utils.HandleError(w, responses.BadRequestError{Msg: "Invalid request."})
		return
	}

	user, err := s.Users.FindByUsername(r.Context(), loginInfo.Username)
	if errors.Is(err, repository.ErrNotFound) {
		utils.HandleError(w, responses.UnauthorizedError{Msg: "Invalid username or password."})
		return
	}
	if err != nil {
		log.Println(err)
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginInfo.Password)); err != nil {
		utils.HandleError(w, responses.UnauthorizedError{Msg: "Invalid username or password."})
		return
	}

	tokenString, err := s.signAccessToken(user)
	if err != nil {
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to generate token."})
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to generate refresh token."})
		return
	}

	expiresAt := time.Now().Add(refreshTokenTTL)
	err = s.Users.SaveRefreshToken(r.Context(), models.RefreshToken{UserID: user.ID, Token: refreshToken, ExpiresAt: expiresAt})
	if err != nil {
		log.Println(err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to store refresh token."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    refreshToken,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"access_token": tokenString}))
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookie); err == nil {
		if err := s.Users.DeleteRefreshToken(r.Context(), cookie.Value); err != nil {
			log.Println(err)
			utils.HandleError(w, responses.InternalServerError{Msg: "Failed to delete refresh token."})
			return
		}
	}

	// Expire the cookie to force the client to delete it
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().AddDate(0, 0, -1),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})
	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"message": "Logged out successfully."}))
}

func (s *Server) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil {
		utils.HandleError(w, responses.UnauthorizedError{Msg: "No refresh token found."})
		return
	}

	stored, err := s.Users.FindRefreshToken(r.Context(), cookie.Value)
	if err != nil {
		log.Println(err)
		utils.HandleError(w, responses.UnauthorizedError{Msg: "Invalid refresh token."})
		return
	}

	if time.Now().After(stored.ExpiresAt) {
		utils.HandleError(w, responses.UnauthorizedError{Msg: "Refresh token has expired."})
		return
	}

	user, err := s.Users.FindByID(r.Context(), stored.UserID)
	if err != nil {
		log.Println(err)
		utils.HandleError(w, responses.InternalServerError{Msg: "An error occurred while processing your request."})
		return
	}

	tokenString, err := s.signAccessToken(user)
	if err != nil {
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to generate token."})
		return
	}
	utils.HandleSuccess(w, models.SuccessResponse(map[string]string{"access_token": tokenString}))
}

func (s *Server) signAccessToken(user models.User) (string, error) {
	claims := models.CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
		},
		ID:       strconv.FormatInt(user.ID, 10),
		Username: user.Username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.JWTSecret))
}

func generateRefreshToken() (string, error) {
	tokenBytes := make([]byte, 64)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}
