// Package support 实现工单分诊与自动回复
package support

// knowledgeBase 平台知识库，进程内只读，分诊与自动回复共用。
// 内容分三部分：功能目录、已知问题、常见误解。
const knowledgeBase = `
=== PLATFORM FEATURE CATALOG ===

SITE & PUBLISHING
- Each tenant runs one local news site on its own subdomain. Custom domains can be connected from Settings > Domain; DNS changes can take up to 48 hours to propagate.
- AI article generation: articles are generated per category, optionally from supplied source text or from a web search. Each generation costs credits (base 3 credits, +1 for an AI image, +1 for SEO metadata).
- Generated articles are published immediately. They can be edited or unpublished afterwards from the Articles dashboard.
- Scheduled generation: the scheduler can generate articles automatically per category on a daily or weekly cadence. Scheduling is configured per category, not per site.
- Editorial directives: a site-wide editor-in-chief directive, per-category directives, and a per-article instruction can all be set. More specific directives take precedence.

IMAGES
- Article images come from a stock photo search first, with an AI-generated illustration as fallback. There is no manual image picker during generation; images can be replaced after publication from the article editor.

CREDITS & BILLING
- Credits are purchased in packs or included with a subscription. Credit balance is shared across all categories of a tenant.
- A generation request is rejected before any work happens if the balance cannot cover the cost. Credits are only deducted after an article is successfully published.
- Credits do not expire at the end of a billing cycle on paid plans. Trial credits expire when the trial ends.

TEAM & ACCESS
- Team members are invited by email from Settings > Team. Roles are owner, editor, and viewer. Only owners can change billing or delete the site.

=== KNOWN ISSUES ===

- KI-101: Articles generated with web search occasionally cite a publication name in the byline area instead of the configured journalist name. Workaround: set a journalist name explicitly in the generation request. Fix scheduled.
- KI-102: Custom domain verification fails for domains using Cloudflare proxying (orange cloud). Workaround: disable the proxy for the verification record, verify, then re-enable.
- KI-103: The articles dashboard can show a stale credit balance for up to a minute after generation. The balance shown at generation time is authoritative.
- KI-104: RSS-sourced articles sometimes repeat the publication name inside the first paragraph. Editing the first paragraph after publication is the current workaround.

=== COMMON CONFUSIONS (FAQ) ===

- "My article was generated but I was charged" - generation always costs credits when it succeeds; the charge is not an error. A failed generation is never charged.
- "The AI wrote about my town but the events seem generic" - when no usable news coverage is found for the topic, the system writes an evergreen local-interest piece instead of inventing news. This is by design, not a malfunction.
- "I asked for a specific word count but got fewer words" - the word count is a target, not a guarantee; article length also depends on how much source material is available.
- "Scheduled articles stopped" - scheduling pauses automatically when the credit balance is too low for the configured generation cost, and resumes after a top-up.
- "I replied to a ticket but the AI answered, not a person" - new tickets start in autopilot mode. A team member can take over any conversation, which switches the ticket to manual mode.
`

// KnowledgeBase 返回静态知识库文本
func KnowledgeBase() string {
	return knowledgeBase
}
