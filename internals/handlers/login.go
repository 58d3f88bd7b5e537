package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
)

const (
	MsgMissingCredentials = "Username and password are required"
	MsgInvalidCredentials = "Invalid username or password"
)

// Credentials reads username and password from a JSON body when the request
// is application/json, and from the form fields otherwise. ok is false when
// either is missing or the body cannot be decoded.
func Credentials(r *http.Request) (username, password string, ok bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", "", false
		}
		username, password = req.Username, req.Password
	} else {
		username = r.PostFormValue("username")
		password = r.PostFormValue("password")
	}
	return username, password, username != "" && password != ""
}
