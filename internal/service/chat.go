package service

import (
	"regexp"
	"strings"
)

// ChatService answers store questions from a fixed knowledge base. The
// first matching rule wins; conversation history is accepted by the API but
// never consulted.
type ChatService interface {
	Respond(message string) string
}

type chatServiceImpl struct {
	rules []chatRule
}

type chatRule struct {
	pattern *regexp.Regexp
	answer  string
}

func NewChatService() ChatService {
	rules := make([]chatRule, 0, len(chatRuleTable))
	for _, r := range chatRuleTable {
		rules = append(rules, chatRule{
			pattern: regexp.MustCompile(r.expr),
			answer:  r.answer,
		})
	}
	return &chatServiceImpl{rules: rules}
}

func (s *chatServiceImpl) Respond(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range s.rules {
		if rule.pattern.MatchString(lower) {
			return rule.answer
		}
	}
	return chatFallback
}

// Rule order matters: greetings and thanks are checked before topics, and
// broad patterns (about, order) sit near the end.
var chatRuleTable = []struct {
	expr   string
	answer string
}{
	{`^(hello|hi|hey|greetings)`, "Hello! 👋 Welcome to Canela Ceylon! I'm here to help you with any questions about our premium Ceylon cinnamon. What would you like to know?"},
	{`thank`, "You're welcome! 😊 If you have any more questions about our cinnamon products, feel free to ask. Enjoy your Canela Ceylon experience!"},
	{`ceylon|true cinnamon|what is|about cinnamon`, kbCeylon},
	{`grade|type|alba|c5|c4|h1|variety`, kbGrades},
	{`health|benefit|good for|medicinal|blood sugar|diabetes`, kbHealth},
	{`ship|deliver|international|tracking|worldwide`, kbShipping},
	{`wholesale|bulk|business|large order|b2b`, kbWholesale},
	{`cassia|difference|vs|compare|fake`, kbDifference},
	{`store|keep|fresh|expire|shelf life|preserve`, kbStorage},
	{`recipe|use|cook|how to|bake|drink`, kbRecipes},
	{`contact|email|phone|reach|support|help`, kbContact},
	{`organic|certified|natural|pure`, kbOrganic},
	{`about|company|who|history|story`, kbAbout},
	{`price|cost|how much|expensive`, kbPrices},
	{`order|buy|purchase|cart`, kbOrdering},
}

const (
	kbCeylon = `Ceylon cinnamon (Cinnamomum verum) is the "true cinnamon" native to Sri Lanka. It's known for its delicate, sweet flavor and low coumarin content, making it the healthier choice compared to Cassia cinnamon.`

	kbGrades = `We offer premium Ceylon cinnamon products:

• **Alba Cinnamon** - The finest grade with ultra-thin bark – 942 LKR
• **Ceylon Cinnamon Alba – Custom Bulk Orders (1kg+)** - Premium bulk option – 7,800 LKR
• **Ceylon Cinnamon C5 Special – Custom Bulk Orders** - High-quality bulk sticks – 6,000 LKR
• **Cinnamon Alba Heritage Tokens** - Unique heritage gift tokens – 1,850 LKR

All prices are in Sri Lankan Rupees (LKR). Contact us for international pricing!`

	kbHealth = `Ceylon cinnamon offers numerous health benefits:

• Helps regulate blood sugar levels
• Rich in antioxidants
• Anti-inflammatory properties
• Supports heart health
• Low in coumarin (safe for daily use)
• May improve brain function
• Supports digestive health`

	kbShipping = `We ship worldwide from Sri Lanka!

• **Domestic (Sri Lanka)**: 2-3 business days
• **International**: 7-14 business days
• Free shipping on orders over $50
• All orders include tracking
• Secure packaging to preserve freshness
• Express shipping available`

	kbWholesale = `We offer wholesale pricing for businesses:

• Minimum order: 5kg
• Bulk discounts up to 25%
• Custom packaging available
• Dedicated account manager
• Quality certificates provided
• Contact: wholesale@canelaceylon.com`

	kbDifference = `Ceylon vs Cassia Cinnamon:

**Ceylon (True Cinnamon)**:
• Light brown, delicate layers
• Sweet, subtle flavor with citrus notes
• Very low coumarin (safe for daily use)
• More expensive, premium quality
• Native to Sri Lanka

**Cassia (Common Cinnamon)**:
• Dark brown, thick bark
• Strong, spicy flavor
• High coumarin (limit intake)
• Cheaper, widely available
• Mostly from China/Indonesia`

	kbStorage = `To keep your cinnamon fresh:

• Store in an airtight container
• Keep in a cool, dark place
• Avoid humidity and heat
• Sticks last 2-3 years
• Powder best within 6 months
• Refrigeration not needed
• Keep away from direct sunlight`

	kbRecipes = `Popular ways to use Ceylon cinnamon:

• Morning coffee or tea (add 1/4 tsp)
• Smoothies and oatmeal
• Baking (cookies, cakes, pastries)
• Curries and savory dishes
• Mulled wine and apple cider
• Honey cinnamon spread
• Rice pudding and desserts
• Cinnamon water (health drink)

Check our Recipes section for detailed instructions!`

	kbContact = `You can reach us at:

📧 Email: info@canelaceylon.com
📱 Phone: +94 77 123 4567
📍 Location: Colombo, Sri Lanka
🌐 Website: canelaceylon.com

Business hours: Mon-Fri 9AM-6PM (Sri Lanka Time)`

	kbOrganic = `Our organic Ceylon cinnamon is:

• USDA Certified Organic
• EU Organic certified
• Grown without pesticides
• No chemical fertilizers
• Sustainably harvested
• Fair trade sourced
• Third-party tested for purity`

	kbAbout = `About Canela Ceylon:

We are a family-owned business based in Sri Lanka, dedicated to bringing the finest Ceylon cinnamon to the world. Our cinnamon is:

• Sourced directly from local farmers
• Harvested at peak freshness
• Hand-processed using traditional methods
• Quality tested before shipping
• Sustainably and ethically produced

We've been in the cinnamon trade for over 25 years!`

	kbPrices = `Our current prices (in Sri Lankan Rupees - LKR):

• **Alba Cinnamon** – 942 LKR
• **Ceylon Cinnamon Alba – Custom Bulk Orders (1kg+)** – 7,800 LKR
• **Ceylon Cinnamon C5 Special – Custom Bulk Orders** – 6,000 LKR
• **Cinnamon Alba Heritage Tokens** – 1,850 LKR

Visit our Products section for the full catalog and current stock availability!`

	kbOrdering = `To place an order:

1. Browse our Products section
2. Select your preferred cinnamon grade
3. Choose quantity and add to cart
4. Proceed to checkout
5. Enter shipping details
6. Complete payment securely

Need help? Contact us at info@canelaceylon.com!`

	chatFallback = `Thank you for your question! While I may not have the specific answer, here's what I can help you with:

• Product information & grades
• Health benefits of Ceylon cinnamon
• Shipping & delivery
• Wholesale inquiries
• Recipes & usage tips
• Storage recommendations

Feel free to ask about any of these topics, or contact us at info@canelaceylon.com for personalized assistance!`
)
