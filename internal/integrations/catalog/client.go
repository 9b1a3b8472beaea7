package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Client клиент каталога салонов: салоны, услуги, мастера
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// UseRedisCache включает кэширование ответов каталога в Redis
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// GetSalon получает салон и список его менеджеров
func (c *Client) GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error) {
	endpoint := fmt.Sprintf("%s/internal/salons/%d", c.baseURL, salonID)
	cacheKey := fmt.Sprintf("catalog:salon:%d", salonID)

	var salon Salon
	if !c.readCache(ctx, cacheKey, &salon) {
		if err := c.doGet(ctx, endpoint, &salon, ErrSalonNotFound); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKey, salon)
	}

	return &domain.Salon{
		ID:         salon.ID,
		Name:       salon.Name,
		ManagerIDs: salon.ManagerIDs,
	}, nil
}

// GetServices получает услуги салона по идентификаторам
// Название услуги разрешается в строку на границе, движку нужны только id и длительность
func (c *Client) GetServices(ctx context.Context, salonID int64, serviceIDs []int64, lang string) ([]domain.Service, error) {
	ids := uniqueSorted(serviceIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no service ids requested", ErrServiceNotFound)
	}

	joined := joinIDs(ids)
	endpoint := fmt.Sprintf("%s/internal/salons/%d/services?ids=%s", c.baseURL, salonID, joined)
	cacheKey := fmt.Sprintf("catalog:services:%d:%s", salonID, joined)

	var services []Service
	if !c.readCache(ctx, cacheKey, &services) {
		if err := c.doGet(ctx, endpoint, &services, ErrSalonNotFound); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKey, services)
	}

	byID := make(map[int64]Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	result := make([]domain.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service id=%d has no duration", ErrInvalidResponse, id)
		}

		price := 0.0
		if s.Price != nil {
			price = *s.Price
		}
		result = append(result, domain.Service{
			ID:              s.ID,
			Name:            s.Name.Resolve(lang),
			Price:           price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return result, nil
}

// GetMasters получает мастеров салона в порядке ротации (включая уволенных)
func (c *Client) GetMasters(ctx context.Context, salonID int64) ([]domain.Master, error) {
	endpoint := fmt.Sprintf("%s/internal/salons/%d/masters", c.baseURL, salonID)
	cacheKey := fmt.Sprintf("catalog:masters:%d", salonID)

	var masters []Master
	if !c.readCache(ctx, cacheKey, &masters) {
		if err := c.doGet(ctx, endpoint, &masters, ErrSalonNotFound); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKey, masters)
	}

	result := make([]domain.Master, 0, len(masters))
	for _, m := range masters {
		status := domain.MasterStatus(m.Status)
		if status != domain.MasterTerminated {
			status = domain.MasterActive
		}
		result = append(result, domain.Master{
			ID:     m.ID,
			UserID: m.UserID,
			Name:   m.Name,
			Status: status,
		})
	}

	return result, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Catalog request %s failed: %v", endpoint, err)
		return fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out interface{}) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Catalog cache read %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val interface{}) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Warn("Catalog cache write %s failed: %v", key, err)
	}
}

func uniqueSorted(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
