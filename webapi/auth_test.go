package webapi_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/granafacil/financeiro/webapi/testutils"
)

type AuthTestSuite struct {
	testutils.AppSuite
}

func (s *AuthTestSuite) TestLogin_BadRequest() {
	resp := s.MakeRequest("POST", "/auth/login", `{"email":123}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AuthTestSuite) TestLogin_UnknownEmail() {
	resp := s.MakeRequest("POST", "/auth/login", `{"email":"nobody@example.com","password":"password123"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestLogin_WrongPassword() {
	body := fmt.Sprintf(`{"email":"%s","password":"wrongpassword"}`, s.User.Email)
	resp := s.MakeRequest("POST", "/auth/login", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *AuthTestSuite) TestLogin_Success() {
	body := fmt.Sprintf(`{"email":"%s","password":"password123"}`, s.User.Email)
	resp := s.MakeRequest("POST", "/auth/login", body, "")
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	s.DecodeData(resp, &data)
	s.NotEmpty(data.Token)
	s.Equal(s.User.Email, data.User.Email)
}

func (s *AuthTestSuite) TestRegisterThenLogin() {
	resp := s.MakeRequest("POST", "/user", `{"name":"João","email":"joao@example.com","password":"hunter22"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	login := s.MakeRequest("POST", "/auth/login", `{"email":"joao@example.com","password":"hunter22"}`, "")
	defer login.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, login.StatusCode)
}

func (s *AuthTestSuite) TestProtectedRouteRejectsMissingToken() {
	resp := s.MakeRequest("GET", "/account", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("Missing or malformed JWT", body["message"])
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
