package web

import (
	"net/http"

	vm "github.com/ericfisherdev/isavra-storefront/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/isavra-storefront/internal/domain/model"
)

// LoginPage renders the admin login form. Authenticated admins go straight
// to the dashboard.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.session.IsAuthenticated() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, "", "")
}

// Login handles the login form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds := model.Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if err := h.session.Login(r.Context(), creds); err != nil {
		h.renderLogin(w, r, http.StatusUnauthorized, creds.Username, h.session.LastError())
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout ends the admin session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, username, errMsg string) {
	h.render(w, r, pageOpts{
		title:    "Admin Login",
		template: "login",
		nav:      "login",
		status:   status,
		errMsg:   errMsg,
		data:     vm.LoginViewModel{Username: username},
	})
}
