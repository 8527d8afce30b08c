package internal

import "strings"

// Hard caps on resource use during a scan. These are not tunable per call.
const (
	// MaxFullRead is the ceiling above which a value is never fully read;
	// oversized aggregates become stub records sized by byte length.
	MaxFullRead = 50_000_000

	// PreviewLen is the bounded read length for per-conversation keys.
	PreviewLen = 8000

	// minEntrySize: keys with smaller values are skipped as noise.
	minEntrySize = 20

	// minAggregateSize: aggregate keys with smaller values are empty shells.
	minAggregateSize = 10

	// minDiscoverySize: discovery entries must carry at least this much.
	minDiscoverySize = 100

	// minDiscoveryFullParse: discovery entries above this size get a full
	// read and generic parse before preview heuristics.
	minDiscoveryFullParse = 1000
)

// Ruleset holds the key-classification tables for one scan. It is immutable
// configuration handed to the classifier, so tests can supply alternates.
type Ruleset struct {
	// AggregateKeys are exact keys whose value holds an entire chat dataset.
	AggregateKeys []string

	// ConversationPatterns are LIKE patterns for per-conversation keys in
	// the flat table.
	ConversationPatterns []string

	// DiscoveryPatterns are broad LIKE patterns tried only when the
	// targeted tiers found nothing.
	DiscoveryPatterns []string

	// Ignore rules: keys that resemble conversation storage but are
	// metadata. Filtered unconditionally, in every tier.
	IgnoredKeys     []string
	IgnoredPrefixes []string
	IgnoredSuffixes []string
	IgnoredSubstrs  []string
}

// DefaultRuleset returns the classification tables covering the known
// VS Code fork vendors.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		AggregateKeys: []string{
			"workbench.panel.aichat.view.aichat.chatdata",
			"workbench.panel.chat.view.chatView.chatdata",
			"aiChat.chatdata",
			"chat.data",
			"cascade.chatdata",
			"cascade.conversations",
			"composer.composerData",
			"interactive.sessions",
		},
		ConversationPatterns: []string{
			"composerData:%",
			"cascade.%",
			"chat.%",
			"aichat.%",
			"aiChat.%",
			"copilot.%",
			"trae.%",
			"marscode.%",
			"kiro.%",
			"memento/icube-ai-agent-storage",
			"memento/interactive-session%",
			"jetskiStateSync.agentManagerInitState",
			"antigravityUnifiedStateSync.trajectorySummaries",
		},
		DiscoveryPatterns: []string{
			"%chatdata%",
			"%chatData%",
			"%conversation%",
			"%Conversation%",
		},
		IgnoredKeys: []string{
			"chat.participantNameRegistry",
			"chat.ChatSessionStore.index",
			"chat.workspaceTransfer",
			"chat.customModes",
			"chat.setupContext",
			"composer.planRegistry",
		},
		IgnoredPrefixes: []string{
			"workbench.panel.composerChatViewPane.",
			"windsurf.cascadeViewContainerId.",
			"workbench.panel.icube.",
			"workbench.panel.chat",
			"workbench.panel.chatSidebar",
			"workbench.panel.chatEditing",
			"workbench.view.trae.",
			"currentAgentData_",
			"icube_session_agent_map",
			"icube-ai-agent-storage-input-history",
			"chatHistoryNeedToBeMigrated",
			"hasAutoNewSession",
		},
		IgnoredSuffixes: []string{
			".hidden",
			".state",
		},
		IgnoredSubstrs: []string{
			"AI.agent.model",
			"AI.agent.modeList",
			"sessionRelation:",
		},
	}
}

// IsIgnored reports whether a key is metadata masquerading as conversation
// storage.
func (r *Ruleset) IsIgnored(key string) bool {
	for _, k := range r.IgnoredKeys {
		if key == k {
			return true
		}
	}
	for _, p := range r.IgnoredPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	for _, s := range r.IgnoredSuffixes {
		if strings.HasSuffix(key, s) {
			return true
		}
	}
	for _, s := range r.IgnoredSubstrs {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// IsAggregateKey reports whether a key is on the aggregate list.
func (r *Ruleset) IsAggregateKey(key string) bool {
	for _, k := range r.AggregateKeys {
		if key == k {
			return true
		}
	}
	return false
}
