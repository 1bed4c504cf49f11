package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrctl/internal/api"
	"github.com/peopleops/hrctl/internal/routes"
	"github.com/peopleops/hrctl/internal/session"
)

type stubNavigator struct {
	current string
}

func (n *stubNavigator) Current() string         { return n.current }
func (n *stubNavigator) RedirectTo(route string) { n.current = route }

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newController(t *testing.T, baseURL string) (*Controller, *session.Store) {
	t.Helper()
	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)
	client := api.New(api.Config{BaseURL: baseURL}, store, &stubNavigator{current: routes.RouteLogin})
	return NewController(store, client), store
}

func TestController_Login(t *testing.T) {
	t.Run("persists the session on success", func(t *testing.T) {
		token := signedToken(t, time.Hour)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@b.com", body["email"])

			json.NewEncoder(w).Encode(map[string]any{
				"token": token,
				"user":  map[string]any{"id": 1, "email": "a@b.com", "role": "Employee"},
			})
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		rec, err := ctrl.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, token, rec.Token)
		assert.Equal(t, routes.RoleEmployee, rec.User.Role)

		stored, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, rec, stored)

		assert.True(t, ctrl.IsAuthenticated())
	})

	t.Run("normalizes the email before sending", func(t *testing.T) {
		var gotEmail string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			gotEmail = body["email"]
			json.NewEncoder(w).Encode(map[string]any{
				"token": signedToken(t, time.Hour),
				"user":  map[string]any{"id": 1, "email": "ada@corp.example", "role": "HR"},
			})
		}))
		defer srv.Close()

		ctrl, _ := newController(t, srv.URL)
		_, err := ctrl.Login(context.Background(), Credentials{Email: "  Ada@Corp.Example ", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, "ada@corp.example", gotEmail)
	})

	t.Run("empty fields fail before any network call", func(t *testing.T) {
		ctrl, _ := newController(t, "http://localhost:1")

		_, err := ctrl.Login(context.Background(), Credentials{Email: "", Password: "x"})
		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "email", missing.Field)
	})

	t.Run("rejected credentials surface as their own kind and clear the store", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid credentials"}`))
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: "stale.token.here",
			User:  session.User{ID: 9, Email: "old@b.com", Role: routes.RoleHR},
		}))

		_, err := ctrl.Login(context.Background(), Credentials{Email: "a@b.com", Password: "wrong"})
		assert.True(t, api.IsKind(err, api.KindCredentialRejected))

		_, readErr := store.Read()
		assert.ErrorIs(t, readErr, session.ErrNoSession)
	})

	t.Run("unknown account is not-found, not credential-rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		ctrl, _ := newController(t, srv.URL)
		_, err := ctrl.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
		assert.True(t, api.IsKind(err, api.KindNotFound))
	})

	t.Run("response missing token or user is malformed, never a partial session", func(t *testing.T) {
		bodies := []string{
			`{"user":{"id":1,"email":"a@b.com","role":"Employee"}}`,
			`{"token":"only.a.token"}`,
			`{}`,
		}
		for _, body := range bodies {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))

			ctrl, store := newController(t, srv.URL)
			_, err := ctrl.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
			assert.True(t, api.IsKind(err, api.KindMalformedResponse), body)

			_, readErr := store.Read()
			assert.ErrorIs(t, readErr, session.ErrNoSession, body)

			srv.Close()
		}
	})
}

func TestController_Register(t *testing.T) {
	t.Run("missing field is rejected locally naming the field", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		ctrl, _ := newController(t, srv.URL)
		_, err := ctrl.Register(context.Background(), Registration{
			FirstName: "",
			LastName:  "Byron",
			Email:     "ada@corp.example",
			Password:  "x",
		})

		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "firstName", missing.Field)
		assert.Contains(t, err.Error(), "firstName")
		assert.Zero(t, calls.Load())
	})

	t.Run("auto-login outcome persists the session", func(t *testing.T) {
		token := signedToken(t, time.Hour)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/register", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"token": token,
				"user":  map[string]any{"id": 2, "email": "ada@corp.example", "role": "Employee"},
			})
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		outcome, err := ctrl.Register(context.Background(), Registration{
			FirstName: "Ada", LastName: "Byron", Email: "ada@corp.example", Password: "x",
		})
		require.NoError(t, err)
		require.NotNil(t, outcome.Session)
		assert.Empty(t, outcome.Confirmation)

		stored, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, token, stored.Token)
	})

	t.Run("confirmation-only outcome leaves the store empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"message": "account created, await approval"})
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		outcome, err := ctrl.Register(context.Background(), Registration{
			FirstName: "Ada", LastName: "Byron", Email: "ada@corp.example", Password: "x",
		})
		require.NoError(t, err)
		assert.Nil(t, outcome.Session)
		assert.Equal(t, "account created, await approval", outcome.Confirmation)

		_, readErr := store.Read()
		assert.ErrorIs(t, readErr, session.ErrNoSession)
	})

	t.Run("duplicate email surfaces as a conflict", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"email already registered"}`))
		}))
		defer srv.Close()

		ctrl, _ := newController(t, srv.URL)
		_, err := ctrl.Register(context.Background(), Registration{
			FirstName: "Ada", LastName: "Byron", Email: "ada@corp.example", Password: "x",
		})
		assert.True(t, api.IsKind(err, api.KindConflict))
	})
}

func TestController_RegisterAdmin(t *testing.T) {
	t.Run("never replaces the administrator's own session", func(t *testing.T) {
		adminToken := signedToken(t, time.Hour)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/register-admin", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"token": signedToken(t, time.Hour),
				"user":  map[string]any{"id": 5, "email": "new@corp.example", "role": "Employee"},
			})
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: adminToken,
			User:  session.User{ID: 1, Email: "admin@corp.example", Role: routes.RoleAdmin},
		}))

		outcome, err := ctrl.RegisterAdmin(context.Background(), Registration{
			FirstName: "New", LastName: "Hire", Email: "new@corp.example", Password: "x",
		})
		require.NoError(t, err)
		assert.Nil(t, outcome.Session)
		assert.Contains(t, outcome.Confirmation, "new@corp.example")

		stored, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, adminToken, stored.Token)
	})
}

func TestController_Logout(t *testing.T) {
	t.Run("clears the store and notifies the backend", func(t *testing.T) {
		var notified atomic.Bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/logout" {
				notified.Store(true)
			}
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, time.Hour),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee},
		}))

		require.NoError(t, ctrl.Logout(context.Background()))

		_, readErr := store.Read()
		assert.ErrorIs(t, readErr, session.ErrNoSession)
		assert.True(t, notified.Load())
	})

	t.Run("store ends up empty even when the notification fails", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, time.Hour),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee},
		}))

		require.NoError(t, ctrl.Logout(context.Background()))

		_, readErr := store.Read()
		assert.ErrorIs(t, readErr, session.ErrNoSession)
	})

	t.Run("store ends up empty when the backend is unreachable", func(t *testing.T) {
		ctrl, store := newController(t, "http://localhost:1")
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, time.Hour),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee},
		}))

		require.NoError(t, ctrl.Logout(context.Background()))

		_, readErr := store.Read()
		assert.ErrorIs(t, readErr, session.ErrNoSession)
	})
}

func TestController_RefreshProfile(t *testing.T) {
	t.Run("employee profile comes from the employee resource", func(t *testing.T) {
		token := signedToken(t, time.Hour)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/employees/my-profile", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"id": 1, "email": "a@b.com", "role": "Employee",
				"firstName": "Ada", "lastName": "Byron",
				"profilePictureUrl": "/uploads/ada.png",
			})
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: token,
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee},
		}))

		user, err := ctrl.RefreshProfile(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Ada", user.FirstName)

		stored, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, token, stored.Token)
		assert.Equal(t, "/uploads/ada.png", stored.User.ProfilePictureURL)
	})

	t.Run("privileged profile comes from /auth/me", func(t *testing.T) {
		for _, role := range []routes.Role{routes.RoleAdmin, routes.RoleHR, routes.RoleManager} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/auth/me", r.URL.Path)
				json.NewEncoder(w).Encode(map[string]any{
					"user": map[string]any{
						"id": 1, "email": "boss@corp.example", "role": string(role),
						"firstName": "Grace",
					},
				})
			}))

			ctrl, store := newController(t, srv.URL)
			require.NoError(t, store.Save(&session.Record{
				Token: signedToken(t, time.Hour),
				User:  session.User{ID: 1, Email: "boss@corp.example", Role: role},
			}))

			user, err := ctrl.RefreshProfile(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Grace", user.FirstName, string(role))

			srv.Close()
		}
	})

	t.Run("without a session there is nothing to refresh", func(t *testing.T) {
		ctrl, _ := newController(t, "http://localhost:1")
		_, err := ctrl.RefreshProfile(context.Background())
		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestController_UpdateProfile(t *testing.T) {
	t.Run("merges edited fields and keeps the token", func(t *testing.T) {
		token := signedToken(t, time.Hour)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/auth/me", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{"firstName": "Grace"}, body)

			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: token,
			User: session.User{
				ID: 1, Email: "boss@corp.example", Role: routes.RoleAdmin,
				FirstName: "Gracie", LastName: "Hopper", Position: "Rear Admiral",
			},
		}))

		user, err := ctrl.UpdateProfile(context.Background(), ProfileUpdate{FirstName: "Grace"})
		require.NoError(t, err)
		assert.Equal(t, "Grace", user.FirstName)

		stored, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, token, stored.Token)
		assert.Equal(t, "Grace", stored.User.FirstName)
		assert.Equal(t, "Hopper", stored.User.LastName)
		assert.Equal(t, "Rear Admiral", stored.User.Position)
	})

	t.Run("employee edits go to the employee resource", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/employees/my-profile", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, time.Hour),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee},
		}))

		user, err := ctrl.UpdateProfile(context.Background(), ProfileUpdate{Position: "Engineer II"})
		require.NoError(t, err)
		assert.Equal(t, "Engineer II", user.Position)
	})

	t.Run("nothing to edit, nothing dispatched", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, time.Hour),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee, FirstName: "Ada"},
		}))

		user, err := ctrl.UpdateProfile(context.Background(), ProfileUpdate{FirstName: "   "})
		require.NoError(t, err)
		assert.Equal(t, "Ada", user.FirstName)
		assert.Zero(t, calls.Load())
	})

	t.Run("rejection leaves the stored record untouched", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "first name too long"})
		}))
		defer srv.Close()

		ctrl, store := newController(t, srv.URL)
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, time.Hour),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee, FirstName: "Ada"},
		}))

		_, err := ctrl.UpdateProfile(context.Background(), ProfileUpdate{FirstName: "Augusta"})
		require.Error(t, err)
		assert.True(t, api.IsKind(err, api.KindValidation))

		stored, readErr := store.Read()
		require.NoError(t, readErr)
		assert.Equal(t, "Ada", stored.User.FirstName)
	})

	t.Run("without a session there is nothing to edit", func(t *testing.T) {
		ctrl, _ := newController(t, "http://localhost:1")
		_, err := ctrl.UpdateProfile(context.Background(), ProfileUpdate{FirstName: "Ada"})
		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestController_IsAuthenticated(t *testing.T) {
	t.Run("false without a session", func(t *testing.T) {
		ctrl, _ := newController(t, "http://localhost:1")
		assert.False(t, ctrl.IsAuthenticated())
	})

	t.Run("expired token tears the session down", func(t *testing.T) {
		ctrl, store := newController(t, "http://localhost:1")
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, -time.Minute),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee},
		}))

		assert.False(t, ctrl.IsAuthenticated())

		_, readErr := store.Read()
		assert.ErrorIs(t, readErr, session.ErrNoSession)
	})

	t.Run("undecodable token tears the session down", func(t *testing.T) {
		ctrl, store := newController(t, "http://localhost:1")
		require.NoError(t, store.Save(&session.Record{
			Token: "garbage-not-a-jwt",
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleEmployee},
		}))

		assert.False(t, ctrl.IsAuthenticated())

		_, readErr := store.Read()
		assert.ErrorIs(t, readErr, session.ErrNoSession)
	})
}

func TestController_HasRole(t *testing.T) {
	t.Run("false unconditionally without a session", func(t *testing.T) {
		ctrl, _ := newController(t, "http://localhost:1")
		assert.False(t, ctrl.HasRole(routes.RoleAdmin, routes.RoleHR, routes.RoleManager, routes.RoleEmployee))
	})

	t.Run("membership test against the stored role", func(t *testing.T) {
		ctrl, store := newController(t, "http://localhost:1")
		require.NoError(t, store.Save(&session.Record{
			Token: signedToken(t, time.Hour),
			User:  session.User{ID: 1, Email: "a@b.com", Role: routes.RoleManager},
		}))

		assert.True(t, ctrl.HasRole(routes.RoleManager))
		assert.True(t, ctrl.HasRole(routes.RoleAdmin, routes.RoleManager))
		assert.False(t, ctrl.HasRole(routes.RoleEmployee))
	})
}
