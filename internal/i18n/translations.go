// Package i18n holds the static text catalog for the gateway pages.
package i18n

// Translations maps message keys to localized text for one language.
type Translations map[string]string

// T returns the catalog for the given language code, falling back to French
// for anything unrecognized.
func T(lang string) Translations {
	switch lang {
	case "en":
		return translationsEN
	case "ar":
		return translationsAR
	default:
		return translationsFR
	}
}

var translationsFR = Translations{
	"brand":           "TradeSense AI",
	"nav_services":    "Services",
	"nav_masterclass": "MasterClass",
	"nav_login":       "Connexion",
	"nav_register":    "Inscription",
	"nav_logout":      "Déconnexion",

	"home_title":    "Devenez un trader financé",
	"home_subtitle": "Prouvez votre discipline sur un challenge simulé et gérez un capital virtuel avec des règles de risque strictes.",
	"home_start":    "Commencer le challenge",

	"pricing":      "Nos challenges",
	"pricing_desc": "Choisissez la taille de compte adaptée à votre profil.",

	"reassurance_title":        "Pourquoi TradeSense",
	"reassurance_easy_title":   "Simple",
	"reassurance_easy_desc":    "Inscription en deux minutes, tableau de bord clair.",
	"reassurance_fast_title":   "Rapide",
	"reassurance_fast_desc":    "Prix en temps réel et exécution instantanée simulée.",
	"reassurance_secure_title": "Encadré",
	"reassurance_secure_desc":  "Limites de perte journalière et totale appliquées automatiquement.",

	"services_assist_title": "Assistant IA",
	"services_assist_desc":  "Un expert trading disponible à tout moment pour analyser le marché.",
	"services_news_title":   "MasterClass",
	"services_news_desc":    "Un programme complet pour apprendre le trading de zéro.",

	"masterclass_title":         "MasterClass Trading",
	"masterclass_course_desc":   "Apprenez les bases du trading, la gestion du risque et la psychologie du marché.",
	"masterclass_program_title": "Programme",
	"masterclass_module1_desc":  "Module 1 : lire un graphique et comprendre les chandeliers.",
	"back_to_dashboard":         "Retour au tableau de bord",

	"dash_balance":       "Solde du challenge",
	"dash_daily_loss":    "Perte max journalière",
	"dash_profit_target": "Objectif de profit",
	"dash_iam":           "Maroc Telecom (IAM)",
	"dash_action_panel":  "Panneau d'action",
	"dash_amount":        "Quantité",
	"dash_buy":           "Acheter",
	"dash_sell":          "Vendre",
	"dash_ai_title":      "Analyse IA",
	"dash_ai_text":       "TradeSense AI surveille les graphiques et vous aide à garder la discipline.",
}

var translationsEN = Translations{
	"brand":           "TradeSense AI",
	"nav_services":    "Services",
	"nav_masterclass": "MasterClass",
	"nav_login":       "Log in",
	"nav_register":    "Sign up",
	"nav_logout":      "Log out",

	"home_title":    "Become a funded trader",
	"home_subtitle": "Prove your discipline on a simulated challenge and manage virtual capital under strict risk rules.",
	"home_start":    "Start the challenge",

	"pricing":      "Our challenges",
	"pricing_desc": "Pick the account size that fits your profile.",

	"reassurance_title":        "Why TradeSense",
	"reassurance_easy_title":   "Simple",
	"reassurance_easy_desc":    "Sign up in two minutes, clean dashboard.",
	"reassurance_fast_title":   "Fast",
	"reassurance_fast_desc":    "Live prices and instant simulated execution.",
	"reassurance_secure_title": "Disciplined",
	"reassurance_secure_desc":  "Daily and total loss limits enforced automatically.",

	"services_assist_title": "AI assistant",
	"services_assist_desc":  "A trading expert available around the clock to read the market.",
	"services_news_title":   "MasterClass",
	"services_news_desc":    "A full program to learn trading from scratch.",

	"masterclass_title":         "Trading MasterClass",
	"masterclass_course_desc":   "Learn trading fundamentals, risk management and market psychology.",
	"masterclass_program_title": "Program",
	"masterclass_module1_desc":  "Module 1: reading a chart and understanding candlesticks.",
	"back_to_dashboard":         "Back to dashboard",

	"dash_balance":       "Challenge balance",
	"dash_daily_loss":    "Max daily loss",
	"dash_profit_target": "Profit target",
	"dash_iam":           "Maroc Telecom (IAM)",
	"dash_action_panel":  "Action panel",
	"dash_amount":        "Quantity",
	"dash_buy":           "Buy",
	"dash_sell":          "Sell",
	"dash_ai_title":      "AI analysis",
	"dash_ai_text":       "TradeSense AI watches the charts and helps you stay disciplined.",
}

var translationsAR = Translations{
	"brand":           "تريدسنس AI",
	"nav_services":    "الخدمات",
	"nav_masterclass": "ماستر كلاس",
	"nav_login":       "تسجيل الدخول",
	"nav_register":    "إنشاء حساب",
	"nav_logout":      "تسجيل الخروج",

	"home_title":    "كن متداولاً ممولاً",
	"home_subtitle": "أثبت انضباطك في تحدٍ محاكى وأدر رأس مال افتراضي وفق قواعد مخاطرة صارمة.",
	"home_start":    "ابدأ التحدي",

	"pricing":      "تحدياتنا",
	"pricing_desc": "اختر حجم الحساب المناسب لك.",

	"reassurance_title":        "لماذا تريدسنس",
	"reassurance_easy_title":   "بسيط",
	"reassurance_easy_desc":    "تسجيل في دقيقتين ولوحة تحكم واضحة.",
	"reassurance_fast_title":   "سريع",
	"reassurance_fast_desc":    "أسعار مباشرة وتنفيذ فوري محاكى.",
	"reassurance_secure_title": "منضبط",
	"reassurance_secure_desc":  "حدود الخسارة اليومية والإجمالية تُطبق تلقائياً.",

	"services_assist_title": "مساعد الذكاء الاصطناعي",
	"services_assist_desc":  "خبير تداول متاح في أي وقت لتحليل السوق.",
	"services_news_title":   "ماستر كلاس",
	"services_news_desc":    "برنامج كامل لتعلم التداول من الصفر.",

	"masterclass_title":         "ماستر كلاس التداول",
	"masterclass_course_desc":   "تعلم أساسيات التداول وإدارة المخاطر وسيكولوجية السوق.",
	"masterclass_program_title": "البرنامج",
	"masterclass_module1_desc":  "الوحدة 1: قراءة الرسم البياني وفهم الشموع اليابانية.",
	"back_to_dashboard":         "العودة إلى لوحة التحكم",

	"dash_balance":       "رصيد التحدي",
	"dash_daily_loss":    "أقصى خسارة يومية",
	"dash_profit_target": "هدف الربح",
	"dash_iam":           "اتصالات المغرب (IAM)",
	"dash_action_panel":  "لوحة التنفيذ",
	"dash_amount":        "الكمية",
	"dash_buy":           "شراء",
	"dash_sell":          "بيع",
	"dash_ai_title":      "تحليل الذكاء الاصطناعي",
	"dash_ai_text":       "تريدسنس AI يراقب الرسوم البيانية ويساعدك على الحفاظ على الانضباط.",
}
