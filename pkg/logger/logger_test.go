package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfreview/pkg/logger"
)

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("should always print info and warn lines", func() {
		log := logger.New(logger.WithOutput(buf), logger.WithFlags(0))
		log.Info("loaded %d cards", 3)
		log.Warn("page %d missing", 7)

		Expect(buf.String()).To(Equal("INFO: loaded 3 cards\nWARN: page 7 missing\n"))
	})

	It("should hide debug lines unless verbose", func() {
		log := logger.New(logger.WithOutput(buf), logger.WithFlags(0))
		log.Debug("hidden")
		Expect(buf.String()).To(BeEmpty())

		log.SetVerbose(true)
		log.Debug("shown")
		Expect(buf.String()).To(Equal("DEBUG: shown\n"))
	})

	It("should print trace lines only at trace level", func() {
		log := logger.New(logger.WithOutput(buf), logger.WithFlags(0), logger.WithLevel(logger.LevelTrace))
		Expect(log.IsVerbose()).To(BeTrue())

		log.Trace("cursor %d", 4)
		Expect(buf.String()).To(Equal("TRACE: cursor 4\n"))
	})

	It("should keep the prefix when the output changes", func() {
		log := logger.New(logger.WithPrefix("[review] "), logger.WithOutput(buf), logger.WithFlags(0))
		log.Info("ready")
		Expect(buf.String()).To(Equal("[review] INFO: ready\n"))
	})
})
