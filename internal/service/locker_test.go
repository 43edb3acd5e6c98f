package service_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/alex28786/the-reef/internal/service"
)

var _ = Describe("LocalLocker", func() {
	It("hands a key to one holder at a time", func() {
		locker := service.NewLocalLocker()
		ctx := context.Background()

		unlock, ok, err := locker.TryLock(ctx, "enrich:1", time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		_, ok, _ = locker.TryLock(ctx, "enrich:1", time.Minute)
		Expect(ok).To(BeFalse())

		_, ok, _ = locker.TryLock(ctx, "enrich:2", time.Minute)
		Expect(ok).To(BeTrue())

		unlock()
		_, ok, _ = locker.TryLock(ctx, "enrich:1", time.Minute)
		Expect(ok).To(BeTrue())
	})

	It("lets an expired lease be taken over", func() {
		locker := service.NewLocalLocker()
		ctx := context.Background()

		staleUnlock, ok, _ := locker.TryLock(ctx, "enrich:1", time.Millisecond)
		Expect(ok).To(BeTrue())
		time.Sleep(5 * time.Millisecond)

		_, ok, _ = locker.TryLock(ctx, "enrich:1", time.Minute)
		Expect(ok).To(BeTrue())

		staleUnlock()
		_, ok, _ = locker.TryLock(ctx, "enrich:1", time.Minute)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("RedisLocker", func() {
	var (
		ctx    context.Context
		mr     *miniredis.Miniredis
		client *redis.Client
		locker service.Locker
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(mr.Close)

		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		DeferCleanup(client.Close)
		locker = service.NewRedisLocker(client, "reef")
	})

	It("stores the lease under the prefixed key with its ttl", func() {
		unlock, ok, err := locker.TryLock(ctx, service.EnrichLockKey(7), 45*time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		Expect(mr.Exists("reef:enrich:7")).To(BeTrue())
		Expect(mr.TTL("reef:enrich:7")).To(Equal(45 * time.Second))

		_, ok, err = locker.TryLock(ctx, service.EnrichLockKey(7), 45*time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		unlock()
		Expect(mr.Exists("reef:enrich:7")).To(BeFalse())
	})

	It("leaves a lease taken over after expiry to its new holder", func() {
		staleUnlock, ok, err := locker.TryLock(ctx, "enrich:1", time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())

		mr.FastForward(2 * time.Second)
		Expect(mr.Exists("reef:enrich:1")).To(BeFalse())

		freshUnlock, ok, err := locker.TryLock(ctx, "enrich:1", time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		holder, err := mr.Get("reef:enrich:1")
		Expect(err).NotTo(HaveOccurred())

		staleUnlock()
		Expect(mr.Exists("reef:enrich:1")).To(BeTrue())
		current, err := mr.Get("reef:enrich:1")
		Expect(err).NotTo(HaveOccurred())
		Expect(current).To(Equal(holder))

		freshUnlock()
		Expect(mr.Exists("reef:enrich:1")).To(BeFalse())
	})

	It("keeps a key another process wrote", func() {
		Expect(mr.Set("reef:enrich:3", "someone-else")).To(Succeed())

		_, ok, err := locker.TryLock(ctx, "enrich:3", time.Minute)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())

		current, err := mr.Get("reef:enrich:3")
		Expect(err).NotTo(HaveOccurred())
		Expect(current).To(Equal("someone-else"))
	})

	It("reports an unreachable server as an error", func() {
		mr.Close()

		_, ok, err := locker.TryLock(ctx, "enrich:4", time.Minute)
		Expect(err).To(MatchError(ContainSubstring("reef:enrich:4")))
		Expect(ok).To(BeFalse())
	})
})
