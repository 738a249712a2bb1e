package telegram

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// messageRequest navbatdagi bitta foydalanuvchi xabari
type messageRequest struct {
	ctx    context.Context
	userID int64
	chatID int64
	text   string
}

// workerPool xabarlarni parallel qayta ishlaydi. Update loop faqat
// submit qiladi, AI va katalog chaqiruvlari shu yerda yashaydi.
type workerPool struct {
	requestQueue chan *messageRequest
	workerCount  int
	queueSize    int
	handler      *BotHandler
	wg           sync.WaitGroup

	rateLimiter   map[int64]*userRateLimit
	rateLimiterMu sync.RWMutex
}

type userRateLimit struct {
	lastRequest  time.Time
	requestCount int
	mu           sync.Mutex
}

const (
	maxRequestsPerSecond   = 3
	defaultQueueSize       = 100
	defaultWorkerCount     = 30
	requestTimeout         = 45 * time.Second
	rateLimiterCleanupTime = 5 * time.Minute
	rateLimiterMaxIdleTime = 10 * time.Minute
	maxRateLimitersInCache = 10000
)

func newWorkerPool(handler *BotHandler, workerCount, queueSize int) *workerPool {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &workerPool{
		requestQueue: make(chan *messageRequest, queueSize),
		workerCount:  workerCount,
		queueSize:    queueSize,
		handler:      handler,
		rateLimiter:  make(map[int64]*userRateLimit),
	}
}

func (wp *workerPool) start(ctx context.Context) {
	logger.Info("%d worker ishga tushdi", wp.workerCount)

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}

	go wp.cleanupRateLimits(ctx)
}

func (wp *workerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker %d to'xtadi", id)
			return
		case req, ok := <-wp.requestQueue:
			if !ok {
				logger.Info("worker %d to'xtadi (navbat yopildi)", id)
				return
			}
			if req == nil {
				continue
			}

			if !wp.checkRateLimit(req.userID) {
				wp.handler.sendMessage(req.chatID, "Слишком много запросов подряд. Подождите, пожалуйста, пару секунд.")
				wp.handler.clearWaitingMessage(req.userID)
				wp.handler.endProcessing(req.userID)
				continue
			}

			wp.processWithTimeout(req)
		}
	}
}

func (wp *workerPool) processWithTimeout(req *messageRequest) {
	if wp.handler == nil {
		logger.Warn("worker pool: handler yo'q, so'rov tashlab yuborildi user=%d", req.userID)
		return
	}

	ctx, cancel := context.WithTimeout(req.ctx, requestTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic user=%d uchun: %v", req.userID, r)
			wp.handler.sendMessage(req.chatID, "Произошла внутренняя ошибка. Попробуйте ещё раз.")
		}
	}()

	defer wp.handler.clearWaitingMessage(req.userID)
	defer wp.handler.endProcessing(req.userID)

	wp.handler.sendTyping(req.chatID)
	wp.handler.routeText(ctx, req)
}

// requestErrorText kontekst xatosini foydalanuvchi tiliga o'giradi,
// oddiy xatolarda fallback qaytadi
func requestErrorText(ctx context.Context, fallback string) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "Запрос обрабатывался слишком долго. Попробуйте ещё раз или упростите формулировку."
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return "Запрос был отменён."
	}
	return fallback
}

func (wp *workerPool) checkRateLimit(userID int64) bool {
	wp.rateLimiterMu.Lock()
	defer wp.rateLimiterMu.Unlock()

	limiter, exists := wp.rateLimiter[userID]
	if !exists {
		wp.rateLimiter[userID] = &userRateLimit{
			lastRequest:  time.Now(),
			requestCount: 1,
		}
		return true
	}

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := time.Now()
	if now.Sub(limiter.lastRequest) >= time.Second {
		limiter.requestCount = 1
		limiter.lastRequest = now
		return true
	}

	if limiter.requestCount >= maxRequestsPerSecond {
		logger.Warn("rate limit oshdi user=%d", userID)
		return false
	}

	limiter.requestCount++
	return true
}

func (wp *workerPool) cleanupRateLimits(ctx context.Context) {
	ticker := time.NewTicker(rateLimiterCleanupTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			var toDelete []int64

			wp.rateLimiterMu.RLock()
			cacheSize := len(wp.rateLimiter)
			for userID, limiter := range wp.rateLimiter {
				limiter.mu.Lock()
				if now.Sub(limiter.lastRequest) > rateLimiterMaxIdleTime {
					toDelete = append(toDelete, userID)
				}
				limiter.mu.Unlock()
			}
			wp.rateLimiterMu.RUnlock()

			if len(toDelete) > 0 {
				wp.rateLimiterMu.Lock()
				for _, userID := range toDelete {
					delete(wp.rateLimiter, userID)
				}
				wp.rateLimiterMu.Unlock()
			}

			if cacheSize > maxRateLimitersInCache {
				wp.evictOldestRateLimiters(cacheSize - maxRateLimitersInCache)
			}
		}
	}
}

// evictOldestRateLimiters xotira cheksiz o'smasligi uchun eng eski
// yozuvlarni chiqaradi
func (wp *workerPool) evictOldestRateLimiters(count int) {
	type userTime struct {
		userID      int64
		lastRequest time.Time
	}

	wp.rateLimiterMu.RLock()
	users := make([]userTime, 0, len(wp.rateLimiter))
	for userID, limiter := range wp.rateLimiter {
		limiter.mu.Lock()
		users = append(users, userTime{userID: userID, lastRequest: limiter.lastRequest})
		limiter.mu.Unlock()
	}
	wp.rateLimiterMu.RUnlock()

	sort.Slice(users, func(i, j int) bool {
		return users[i].lastRequest.Before(users[j].lastRequest)
	})

	if count > len(users) {
		count = len(users)
	}

	wp.rateLimiterMu.Lock()
	for i := 0; i < count; i++ {
		delete(wp.rateLimiter, users[i].userID)
	}
	wp.rateLimiterMu.Unlock()

	logger.Warn("rate limiter keshi katta, %d eski yozuv o'chirildi", count)
}

func (wp *workerPool) submit(req *messageRequest) bool {
	select {
	case wp.requestQueue <- req:
		return true
	default:
		logger.Warn("navbat to'la (%d/%d), so'rov rad etildi user=%d", len(wp.requestQueue), wp.queueSize, req.userID)
		wp.handler.sendMessage(req.chatID, "Бот сейчас перегружен. Попробуйте, пожалуйста, через минуту.")
		wp.handler.endProcessing(req.userID)
		return false
	}
}

func (wp *workerPool) shutdown() {
	logger.Info("worker pool to'xtatilmoqda, navbatda %d xabar", len(wp.requestQueue))
	close(wp.requestQueue)
	wp.wg.Wait()
	logger.Info("worker pool to'xtadi")
}
