package access

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	domaccess "github.com/tu-usuario/gestion-pro/internal/domain/access"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/infrastructure/cache"
	"github.com/tu-usuario/gestion-pro/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// AccessUseCase expone la resolución de acceso al resto de la aplicación con
// cache de proyección y protección contra resultados obsoletos:
//   - resoluciones concurrentes de una misma identidad se colapsan en una
//     (singleflight);
//   - cada resolución en vuelo queda etiquetada con la generación de la
//     identidad que la disparó, y su resultado solo se aplica al cache si esa
//     generación sigue vigente — un cambio de identidad/rol que llega con una
//     resolución en vuelo no puede ser pisado por el resultado viejo.
type AccessUseCase struct {
	engine *domaccess.Engine
	cache  cache.Cache // nil = sin cache, siempre en fresco
	ttl    time.Duration
	log    *logger.Logger

	group singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

// NewAccessUseCase construye el caso de uso. c puede ser nil.
func NewAccessUseCase(engine *domaccess.Engine, c cache.Cache, ttl time.Duration, log *logger.Logger) *AccessUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AccessUseCase{
		engine:      engine,
		cache:       c,
		ttl:         ttl,
		log:         log,
		generations: make(map[string]uint64),
	}
}

// cachedResult forma serializada del resultado en el cache.
type cachedResult struct {
	Tier          string   `json:"tier"`
	ActiveModules []string `json:"active_modules"`
}

// Resolve devuelve el acceso resuelto de la identidad. Nunca devuelve error:
// cualquier fallo (cache incluido) degrada a una resolución en fresco o a la
// línea base, jamás rompe la navegación.
func (uc *AccessUseCase) Resolve(ctx context.Context, identity *entity.Identity) domaccess.Result {
	if identity == nil || identity.ID == "" {
		return uc.engine.ResolveAccess(ctx, nil)
	}

	if res, ok := uc.fromCache(ctx, identity.ID); ok {
		return res
	}

	v, _, _ := uc.group.Do(identity.ID, func() (any, error) {
		gen := uc.generation(identity.ID)
		res := uc.engine.ResolveAccess(ctx, identity)
		// Aplicar solo si la identidad no cambió mientras resolvíamos.
		if uc.generation(identity.ID) == gen {
			uc.store(ctx, identity.ID, res)
		}
		return res, nil
	})
	return v.(domaccess.Result)
}

// Invalidate descarta la proyección cacheada de un usuario y marca obsoleta
// cualquier resolución en vuelo (login, resync forzado, cambio de membresía).
func (uc *AccessUseCase) Invalidate(ctx context.Context, userID string) {
	uc.mu.Lock()
	uc.generations[userID]++
	uc.mu.Unlock()

	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, cache.AccessKey(userID)); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("invalidación de cache de acceso falló")
	}
}

// Catalog expone el catálogo del motor (lo necesita el filtro de navegación).
func (uc *AccessUseCase) Catalog() *domaccess.Catalog {
	return uc.engine.Catalog()
}

func (uc *AccessUseCase) generation(userID string) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.generations[userID]
}

func (uc *AccessUseCase) fromCache(ctx context.Context, userID string) (domaccess.Result, bool) {
	if uc.cache == nil {
		return domaccess.Result{}, false
	}
	raw, err := uc.cache.Get(ctx, cache.AccessKey(userID))
	if err != nil {
		if err != cache.ErrCacheMiss {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("lectura de cache de acceso falló, se resuelve en fresco")
		}
		return domaccess.Result{}, false
	}
	var c cachedResult
	if err := json.Unmarshal(raw, &c); err != nil {
		return domaccess.Result{}, false
	}
	set := make(domaccess.ModuleSet, len(c.ActiveModules))
	for _, id := range c.ActiveModules {
		set[id] = true
	}
	return domaccess.Result{Tier: domaccess.Tier(c.Tier), ActiveModules: set}, true
}

func (uc *AccessUseCase) store(ctx context.Context, userID string, res domaccess.Result) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(cachedResult{
		Tier:          string(res.Tier),
		ActiveModules: res.ActiveModules.IDs(),
	})
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, cache.AccessKey(userID), raw, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("escritura de cache de acceso falló")
	}
}
