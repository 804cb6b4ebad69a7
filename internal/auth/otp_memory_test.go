package auth

import (
	"context"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
)

var _ = ginkgo.Describe("MemoryOTPStore", func() {
	var (
		store *MemoryOTPStore
		ctx   context.Context
	)

	ginkgo.BeforeEach(func() {
		store = NewMemoryOTPStore(5 * time.Minute)
		ctx = context.Background()
	})

	ginkgo.It("should verify an issued code exactly once", func() {
		code, err := store.Issue(ctx, "user@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		ok, err := store.Verify(ctx, "user@example.com", code, FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeTrue())

		ok, err = store.Verify(ctx, "user@example.com", code, FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should keep codes per email", func() {
		codeA, err := store.Issue(ctx, "a@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		_, err = store.Issue(ctx, "b@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		ok, err := store.Verify(ctx, "a@example.com", codeA, FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeTrue())
	})

	ginkgo.It("should overwrite the pending code on reissue", func() {
		first, err := store.Issue(ctx, "user@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		second, err := store.Issue(ctx, "user@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		if first != second {
			ok, err := store.Verify(ctx, "user@example.com", first, FlowLogin)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeFalse())
		}

		ok, err := store.Verify(ctx, "user@example.com", second, FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeTrue())
	})

	ginkgo.It("should not verify a code against the wrong flow", func() {
		code, err := store.Issue(ctx, "user@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		ok, err := store.Verify(ctx, "user@example.com", code, FlowForgotPassword)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("should evict an expired code on sight", func() {
		code, err := store.Issue(ctx, "user@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		// move the clock past the TTL
		store.now = func() time.Time { return time.Now().Add(6 * time.Minute) }

		ok, err := store.Verify(ctx, "user@example.com", code, FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeFalse())

		// a fresh code after eviction still works
		store.now = time.Now
		code, err = store.Issue(ctx, "user@example.com", FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		ok, err = store.Verify(ctx, "user@example.com", code, FlowLogin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ok).To(gomega.BeTrue())
	})
})

var _ = ginkgo.Describe("MemoryResetTokenStore", func() {
	var (
		store *MemoryResetTokenStore
		ctx   context.Context
	)

	ginkgo.BeforeEach(func() {
		store = NewMemoryResetTokenStore(10 * time.Minute)
		ctx = context.Background()
	})

	ginkgo.It("should redeem a token exactly once", func() {
		token, err := store.Create(ctx, "user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		email, err := store.Redeem(ctx, token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(email).To(gomega.Equal("user@example.com"))

		_, err = store.Redeem(ctx, token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidResetToken))
	})

	ginkgo.It("should reject an unknown token", func() {
		_, err := store.Redeem(ctx, "nope")
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidResetToken))
	})

	ginkgo.It("should reject an expired token", func() {
		token, err := store.Create(ctx, "user@example.com")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		store.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

		_, err = store.Redeem(ctx, token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidResetToken))
	})
})
