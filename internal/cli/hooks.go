package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logGraphHooks logs graph build and merge events at debug level.
type logGraphHooks struct {
	logger *log.Logger
}

func (h *logGraphHooks) OnBuildStart(ctx context.Context, scene string) {
	h.logger.Debugf("building graph for scene %q", scene)
}

func (h *logGraphHooks) OnBuildComplete(ctx context.Context, scene string, nodeCount, relationCount int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("build failed for scene %q: %v", scene, err)
		return
	}
	h.logger.Debugf("built scene %q: %d nodes, %d relations (%s)",
		scene, nodeCount, relationCount, duration.Round(time.Millisecond))
}

func (h *logGraphHooks) OnMerge(ctx context.Context, survivor string, identityCount int) {
	h.logger.Debugf("merged cyclic pair into %q (%d identities)", survivor, identityCount)
}

func (h *logGraphHooks) OnCollapseComplete(ctx context.Context, merges int, duration time.Duration) {
	h.logger.Debugf("cycle collapse finished: %d merges (%s)", merges, duration.Round(time.Millisecond))
}

// logRenderHooks logs render events at debug level.
type logRenderHooks struct {
	logger *log.Logger
}

func (h *logRenderHooks) OnRenderStart(ctx context.Context, format string, nodeCount int) {
	h.logger.Debugf("rendering %d nodes as %s", nodeCount, format)
}

func (h *logRenderHooks) OnRenderComplete(ctx context.Context, format string, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("render %s failed: %v", format, err)
		return
	}
	h.logger.Debugf("rendered %s (%s)", format, duration.Round(time.Millisecond))
}

// logCacheHooks logs cache events at debug level.
type logCacheHooks struct {
	logger *log.Logger
}

func (h *logCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debugf("cache hit: %s", keyType)
}

func (h *logCacheHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debugf("cache miss: %s", keyType)
}

func (h *logCacheHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debugf("cache set: %s (%d bytes)", keyType, size)
}
