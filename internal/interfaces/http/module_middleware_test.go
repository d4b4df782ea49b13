package http_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	httpiface "github.com/tu-usuario/gestion-pro/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pro/pkg/jwt"
)

const testSecret = "secreto-de-test"

type fakeChecker struct {
	active bool
	err    error
}

func (f fakeChecker) HasActiveModule(ctx context.Context, identity *entity.Identity, moduleCode string) (bool, error) {
	return f.active, f.err
}

type fakeResolver struct {
	tier access.Tier
}

func (f fakeResolver) Resolve(ctx context.Context, identity *entity.Identity) access.Result {
	cat := access.DefaultCatalog()
	return access.Result{Tier: f.tier, ActiveModules: access.Resolve(f.tier, nil, cat)}
}

func appWithModule(checker fakeChecker) *fiber.App {
	app := fiber.New()
	app.Get("/stock",
		httpiface.AuthMiddleware(testSecret),
		httpiface.RequireModule("gestion-stock", checker),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "u-1", "ana@ejemplo.com", "gestion-pro", 5)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequireModule_ModuloActivo(t *testing.T) {
	app := appWithModule(fakeChecker{active: true})

	req := httptest.NewRequest("GET", "/stock", nil)
	req.Header.Set("Authorization", bearerToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireModule_ModuloInactivo(t *testing.T) {
	app := appWithModule(fakeChecker{active: false})

	req := httptest.NewRequest("GET", "/stock", nil)
	req.Header.Set("Authorization", bearerToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireModule_ChequeoFallido(t *testing.T) {
	app := appWithModule(fakeChecker{err: errors.New("backend caído")})

	req := httptest.NewRequest("GET", "/stock", nil)
	req.Header.Set("Authorization", bearerToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequireModule_SinToken(t *testing.T) {
	app := appWithModule(fakeChecker{active: true})

	resp, err := app.Test(httptest.NewRequest("GET", "/stock", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireModule_TokenInvalido(t *testing.T) {
	app := appWithModule(fakeChecker{active: true})

	req := httptest.NewRequest("GET", "/stock", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func appWithAdmin(resolver fakeResolver) *fiber.App {
	app := fiber.New()
	app.Get("/admin/tenants",
		httpiface.AuthMiddleware(testSecret),
		httpiface.RequirePlatformAdmin(resolver),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestRequirePlatformAdmin_AdminPlataforma(t *testing.T) {
	app := appWithAdmin(fakeResolver{tier: access.TierPlatformSuperAdmin})

	req := httptest.NewRequest("GET", "/admin/tenants", nil)
	req.Header.Set("Authorization", bearerToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// La elevación de un super admin de cliente es local a su tenant: las rutas
// de plataforma le responden 403 igual que a un miembro ordinario.
func TestRequirePlatformAdmin_TiersDeTenantRechazados(t *testing.T) {
	for _, tier := range []access.Tier{
		access.TierClientSuperAdmin,
		access.TierClientMember,
		access.TierUnauthenticated,
	} {
		t.Run(string(tier), func(t *testing.T) {
			app := appWithAdmin(fakeResolver{tier: tier})

			req := httptest.NewRequest("GET", "/admin/tenants", nil)
			req.Header.Set("Authorization", bearerToken(t))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestRequirePlatformAdmin_SinToken(t *testing.T) {
	app := appWithAdmin(fakeResolver{tier: access.TierPlatformSuperAdmin})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/tenants", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// El middleware opcional deja pasar al anónimo con identidad nula: la ruta de
// acceso responde 200 con la línea base en lugar de 401.
func TestOptionalAuth_AnonimoContinua(t *testing.T) {
	app := fiber.New()
	app.Get("/api/access", httpiface.OptionalAuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		if httpiface.GetIdentity(c) != nil {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/access", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOptionalAuth_TokenValidoExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/api/access", httpiface.OptionalAuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		identity := httpiface.GetIdentity(c)
		if identity == nil || identity.ID != "u-1" {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/access", nil)
	req.Header.Set("Authorization", bearerToken(t))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
