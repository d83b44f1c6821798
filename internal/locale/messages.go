package locale

// Message keys. Arguments are documented next to each key.
const (
	SetupAssistantTitle       Key = "setup.assistant.title"
	SetupAssistantPlaceholder Key = "setup.assistant.placeholder"
	SetupUserTitle            Key = "setup.user.title" // assistant
	SetupUserPlaceholder      Key = "setup.user.placeholder"
	SetupContinue             Key = "setup.continue"

	HeaderAssistant  Key = "header.assistant" // assistant
	HomeGreeting     Key = "home.greeting"    // user
	TopicPlaceholder Key = "home.topic.placeholder"
	CreatePlan       Key = "home.create_plan"
	Planning         Key = "home.planning"

	WelcomeBack Key = "session.welcome_back" // user, topic
	PlanReady   Key = "session.plan_ready"   // user, assistant
	PlanFailed  Key = "session.plan_failed"
	Thinking    Key = "session.thinking" // assistant

	ExplanationFailed Key = "session.explanation_failed"
	QuestionFailed    Key = "session.question_failed"
	DeeperFailed      Key = "session.deeper_failed"
	ChallengeIntro    Key = "session.challenge_intro" // user, topic
	ChallengeFailed   Key = "session.challenge_failed"
	UnlockedAll       Key = "session.unlocked_all" // user
	Busy              Key = "session.busy"
	Locked            Key = "session.locked"
	NeedsCompletion   Key = "session.needs_completion"

	DeeperSubjectTopic  Key = "deeper.subject.topic" // topic
	DeeperSubjectAnswer Key = "deeper.subject.answer"
	DeeperSummarize     Key = "deeper.summarize" // subject
	DeeperAnalogy       Key = "deeper.analogy"   // subject
	DeeperExample       Key = "deeper.example"   // subject

	LearningPath      Key = "plan.learning_path"
	UnlockAllButton   Key = "plan.unlock_all"
	ChallengeButton   Key = "plan.challenge"
	StartQuiz         Key = "plan.start_quiz"
	QuizLoading       Key = "plan.quiz_loading"
	QuestionHint      Key = "plan.question_placeholder"
	Listening         Key = "plan.listening"
	Speak             Key = "plan.speak"
	StopSpeaking      Key = "plan.stop_speaking"
	ExportDone        Key = "plan.export_done" // path
	ExportFailed      Key = "plan.export_failed"
	NothingToExport   Key = "plan.nothing_to_export"
	ProgressOverview  Key = "plan.progress" // completed, total, percent
	BackToMenuConfirm Key = "plan.back_to_menu"

	QuizTitle            Key = "quiz.title"
	QuizQuestionOf       Key = "quiz.question_of" // current, total
	QuizPrev             Key = "quiz.prev"
	QuizNext             Key = "quiz.next"
	QuizFinish           Key = "quiz.finish"
	QuizExit             Key = "quiz.exit"
	QuizFailed           Key = "quiz.failed"
	RemediationPending   Key = "quiz.remediation_pending"
	RemediationFailed    Key = "quiz.remediation_failed"
	ResultsTitle         Key = "results.title"
	ResultsScore         Key = "results.score" // total, correct
	ResultsCorrections   Key = "results.corrections"
	ResultsPerfect       Key = "results.perfect" // user
	ResultsSummaryFailed Key = "results.summary_failed"
	Close                Key = "common.close"

	ProgressTitle  Key = "progress.title"
	BadgesTitle    Key = "progress.badges"
	ProgressNoPlan Key = "progress.no_plan"

	ExportTitle Key = "export.title" // topic
	NotesPrefix Key = "export.prefix"

	BadgeFirstStepName       Key = "badge.first_step.name"
	BadgeFirstStepDesc       Key = "badge.first_step.desc"
	BadgeCuriousMindName     Key = "badge.curious_mind.name"
	BadgeCuriousMindDesc     Key = "badge.curious_mind.desc"
	BadgeHalfwayName         Key = "badge.halfway.name"
	BadgeHalfwayDesc         Key = "badge.halfway.desc"
	BadgeMasterName          Key = "badge.master.name"
	BadgeMasterDesc          Key = "badge.master.desc"
	BadgeChallengeMasterName Key = "badge.challenge_master.name"
	BadgeChallengeMasterDesc Key = "badge.challenge_master.desc"
	BadgeQuizChampionName    Key = "badge.quiz_champion.name"
	BadgeQuizChampionDesc    Key = "badge.quiz_champion.desc"
	BadgeEarned              Key = "badge.earned" // icon, name

	Tagline           Key = "ui.tagline"
	SetupScreenTitle  Key = "ui.setup_title"
	HomeScreenTitle   Key = "ui.home_title"
	ProfileSaveFailed Key = "ui.profile_save_failed"
	SelectTopicFirst  Key = "ui.select_topic_first"
	QuizLocked        Key = "ui.quiz_locked"
	VoiceUnavailable  Key = "ui.voice_unavailable"

	HintTheme    Key = "hint.theme"
	HintQuit     Key = "hint.quit"
	HintFocus    Key = "hint.focus"
	HintScroll   Key = "hint.scroll"
	HintBack     Key = "hint.back"
	HintSelect   Key = "hint.select"
	HintAsk      Key = "hint.ask"
	HintDeeper   Key = "hint.deeper"
	HintVoice    Key = "hint.voice"
	HintExport   Key = "hint.export"
	HintMenu     Key = "hint.menu"
	HintNavigate Key = "hint.navigate"
	HintAnswer   Key = "hint.answer"
	HintYes      Key = "hint.yes"
	HintNo       Key = "hint.no"

	TerminalTooSmall Key = "layout.too_small" // min width, min height, width, height
)

var english = map[Key]string{
	SetupAssistantTitle:       "Give your AI companion a name",
	SetupAssistantPlaceholder: "Assistant name...",
	SetupUserTitle:            "Great! Meet %[1]s. How should %[1]s address you?",
	SetupUserPlaceholder:      "Your name...",
	SetupContinue:             "Continue",

	HeaderAssistant:  "Your AI Assistant: %s",
	HomeGreeting:     "Hi %s, what would you like to learn today?",
	TopicPlaceholder: "Type a topic...",
	CreatePlan:       "Create Plan",
	Planning:         "Preparing your plan...",

	WelcomeBack: "Welcome back, %[1]s! You can pick up your study of \"%[2]s\" where you left off.",
	PlanReady:   "Great, %[1]s! As %[2]s I've prepared a study plan for you. Pick a topic from the learning path to begin.",
	PlanFailed:  "Sorry, I couldn't create a study plan. Please try another topic.",
	Thinking:    "%s is thinking...",

	ExplanationFailed: "Something went wrong while fetching the explanation. Please try again.",
	QuestionFailed:    "Something went wrong while answering your question.",
	DeeperFailed:      "Something went wrong while answering your request.",
	ChallengeIntro:    "Let's see, %[1]s! How much do you remember about \"%[2]s\"?",
	ChallengeFailed:   "Something went wrong while challenging you. Please try again.",
	UnlockedAll:       "Great! All topics are unlocked. You can now pick any topic you like, %s.",
	Busy:              "Please wait for the current reply to finish.",
	Locked:            "Complete the previous topic first.",
	NeedsCompletion:   "Complete at least one topic first.",

	DeeperSubjectTopic:  "the topic \"%s\"",
	DeeperSubjectAnswer: "this answer",
	DeeperSummarize:     "Could you summarize %s?",
	DeeperAnalogy:       "Could you explain %s with an analogy?",
	DeeperExample:       "Could you give a real-life example for %s?",

	LearningPath:      "Learning Journey",
	UnlockAllButton:   "Unlock All",
	ChallengeButton:   "Challenge Me",
	StartQuiz:         "Start Review Quiz",
	QuizLoading:       "Preparing quiz...",
	QuestionHint:      "Ask a question about the topic...",
	Listening:         "Listening...",
	Speak:             "Read aloud",
	StopSpeaking:      "Stop reading",
	ExportDone:        "Notes saved to %s",
	ExportFailed:      "Could not export the notes.",
	NothingToExport:   "There are no notes to export.",
	ProgressOverview:  "%d / %d sub-topics completed (%d%%)",
	BackToMenuConfirm: "Return to the main menu? Your plan will be cleared.",

	QuizTitle:            "Review Quiz",
	QuizQuestionOf:       "Question %d / %d",
	QuizPrev:             "Back",
	QuizNext:             "Next",
	QuizFinish:           "Finish Quiz",
	QuizExit:             "Exit Quiz",
	QuizFailed:           "Sorry, something went wrong while creating the review quiz.",
	RemediationPending:   "Fetching explanation...",
	RemediationFailed:    "Something went wrong while fetching the explanation.",
	ResultsTitle:         "Quiz Results",
	ResultsScore:         "%[2]d of %[1]d correct!",
	ResultsCorrections:   "Review of your mistakes:",
	ResultsPerfect:       "Great job, %s! You got every question right. You've mastered the topic.",
	ResultsSummaryFailed: "Something went wrong while explaining your mistakes.",
	Close:                "Close",

	ProgressTitle:  "My Progress",
	BadgesTitle:    "Achievement Badges",
	ProgressNoPlan: "No saved study plan.",

	ExportTitle: "Study Notes: %s",
	NotesPrefix: "study-notes",

	BadgeFirstStepName:       "First Step",
	BadgeFirstStepDesc:       "You completed your first topic.",
	BadgeCuriousMindName:     "Curious Mind",
	BadgeCuriousMindDesc:     "You completed 3 different topics.",
	BadgeHalfwayName:         "Halfway There",
	BadgeHalfwayDesc:         "You completed 50% of the topics.",
	BadgeMasterName:          "Topic Master",
	BadgeMasterDesc:          "You completed every topic.",
	BadgeChallengeMasterName: "Challenge Master",
	BadgeChallengeMasterDesc: "You used challenge mode.",
	BadgeQuizChampionName:    "Quiz Champion",
	BadgeQuizChampionDesc:    "You scored 100% on the review quiz.",
	BadgeEarned:              "New badge: %s %s",

	Tagline:           "Your AI study companion",
	SetupScreenTitle:  "Setup",
	HomeScreenTitle:   "Home",
	ProfileSaveFailed: "Could not save your profile. Please try again.",
	SelectTopicFirst:  "Pick a topic from the learning journey first.",
	QuizLocked:        "Complete every topic or unlock all to take the review quiz.",
	VoiceUnavailable:  "Voice input is not available.",

	HintTheme:    "theme",
	HintQuit:     "Quit",
	HintFocus:    "focus",
	HintScroll:   "scroll",
	HintBack:     "back",
	HintSelect:   "select",
	HintAsk:      "ask",
	HintDeeper:   "summary/analogy/example",
	HintVoice:    "voice",
	HintExport:   "export",
	HintMenu:     "menu",
	HintNavigate: "move",
	HintAnswer:   "answer",
	HintYes:      "yes",
	HintNo:       "no",

	TerminalTooSmall: "Terminal too small\n\nPlease resize to at least %d x %d\n\nCurrent: %d x %d",
}

var turkish = map[Key]string{
	SetupAssistantTitle:       "Yapay zeka arkadaşına bir isim ver",
	SetupAssistantPlaceholder: "Asistan adı...",
	SetupUserTitle:            "Harika! %[1]s ile tanış. Peki, %[1]s sana nasıl hitap etsin?",
	SetupUserPlaceholder:      "Senin adın...",
	SetupContinue:             "Devam",

	HeaderAssistant:  "Yapay Zeka Asistanın: %s",
	HomeGreeting:     "Merhaba %s, bugün ne öğrenmek istersin?",
	TopicPlaceholder: "Bir konu yazın...",
	CreatePlan:       "Plan Oluştur",
	Planning:         "Planın hazırlanıyor...",

	WelcomeBack: "Tekrar hoş geldin, %[1]s! \"%[2]s\" konusundaki çalışmana kaldığın yerden devam edebilirsin.",
	PlanReady:   "Harika, %[1]s! %[2]s olarak senin için bir çalışma planı hazırladım. Başlamak için öğrenme yolundan bir konu seç.",
	PlanFailed:  "Üzgünüm, bir çalışma planı oluşturamadım. Lütfen başka bir konu deneyin.",
	Thinking:    "%s düşünüyor...",

	ExplanationFailed: "Konuyla ilgili açıklama alınırken bir hata oluştu. Lütfen tekrar deneyin.",
	QuestionFailed:    "Sorunuzu yanıtlarken bir hata oluştu.",
	DeeperFailed:      "İsteğinizi yanıtlarken bir hata oluştu.",
	ChallengeIntro:    "Haydi bakalım, %[1]s! \"%[2]s\" konusunu ne kadar hatırlıyorsun?",
	ChallengeFailed:   "Sana meydan okurken bir hata oluştu. Lütfen tekrar dene.",
	UnlockedAll:       "Harika! Tüm konu kilitleri açıldı. Şimdi istediğin konuyu seçebilirsin, %s.",
	Busy:              "Lütfen mevcut yanıtın bitmesini bekle.",
	Locked:            "Önce bir önceki konuyu tamamla.",
	NeedsCompletion:   "Önce en az bir konuyu tamamla.",

	DeeperSubjectTopic:  "\"%s\" konusunu",
	DeeperSubjectAnswer: "bu yanıtı",
	DeeperSummarize:     "%s özetler misin?",
	DeeperAnalogy:       "%s bir analoji ile anlatabilir misin?",
	DeeperExample:       "%s için gerçek hayattan bir örnek verebilir misin?",

	LearningPath:      "Öğrenme Yolculuğu",
	UnlockAllButton:   "Tüm Kilitleri Aç",
	ChallengeButton:   "Bana Meydan Oku",
	StartQuiz:         "Genel Tekrar Testi Başlat",
	QuizLoading:       "Test Hazırlanıyor...",
	QuestionHint:      "Konuyla ilgili bir soru sorun...",
	Listening:         "Dinliyorum...",
	Speak:             "Mesajı oku",
	StopSpeaking:      "Okumayı durdur",
	ExportDone:        "Notlar kaydedildi: %s",
	ExportFailed:      "Notlar dışa aktarılamadı.",
	NothingToExport:   "Dışa aktarılacak bir not bulunmuyor.",
	ProgressOverview:  "%d / %d alt başlık tamamlandı (%%%d)",
	BackToMenuConfirm: "Ana menüye dönülsün mü? Planın silinecek.",

	QuizTitle:            "Genel Tekrar Testi",
	QuizQuestionOf:       "Soru %d / %d",
	QuizPrev:             "Geri",
	QuizNext:             "İleri",
	QuizFinish:           "Testi Bitir",
	QuizExit:             "Testten Çık",
	QuizFailed:           "Üzgünüm, genel tekrar testi oluşturulurken bir hata oluştu.",
	RemediationPending:   "Açıklama getiriliyor...",
	RemediationFailed:    "Açıklama getirilirken bir hata oluştu.",
	ResultsTitle:         "Test Sonuçları",
	ResultsScore:         "%[1]d sorudan %[2]d doğru!",
	ResultsCorrections:   "Yanlışlarının analizi:",
	ResultsPerfect:       "Harika iş, %s! Tüm soruları doğru bildin. Konuyu çok iyi kavramışsın.",
	ResultsSummaryFailed: "Yanlışların için açıklamaları oluştururken bir hata oluştu.",
	Close:                "Kapat",

	ProgressTitle:  "Gelişimim",
	BadgesTitle:    "Başarı Rozetleri",
	ProgressNoPlan: "Kayıtlı bir çalışma planı yok.",

	ExportTitle: "Ders Notları: %s",
	NotesPrefix: "ders-notlari",

	BadgeFirstStepName:       "İlk Adım",
	BadgeFirstStepDesc:       "İlk konuyu tamamladın.",
	BadgeCuriousMindName:     "Meraklı Zihin",
	BadgeCuriousMindDesc:     "3 farklı konuyu tamamladın.",
	BadgeHalfwayName:         "Yolun Yarısı",
	BadgeHalfwayDesc:         "Konuların %50'sini tamamladın.",
	BadgeMasterName:          "Konu Hakimi",
	BadgeMasterDesc:          "Tüm konuları tamamladın.",
	BadgeChallengeMasterName: "Meydan Okuma Ustası",
	BadgeChallengeMasterDesc: "Meydan okuma modunu kullandın.",
	BadgeQuizChampionName:    "Sınav Şampiyonu",
	BadgeQuizChampionDesc:    "Tekrar testinde %100 başarı elde ettin.",
	BadgeEarned:              "Yeni rozet: %s %s",

	Tagline:           "Yapay zeka destekli çalışma arkadaşın",
	SetupScreenTitle:  "Kurulum",
	HomeScreenTitle:   "Ana Sayfa",
	ProfileSaveFailed: "Profilin kaydedilemedi. Lütfen tekrar dene.",
	SelectTopicFirst:  "Önce öğrenme yolundan bir konu seç.",
	QuizLocked:        "Tekrar testi için tüm konuları tamamla ya da kilitleri aç.",
	VoiceUnavailable:  "Sesli giriş kullanılamıyor.",

	HintTheme:    "tema",
	HintQuit:     "Çıkış",
	HintFocus:    "odak",
	HintScroll:   "kaydır",
	HintBack:     "geri",
	HintSelect:   "seç",
	HintAsk:      "sor",
	HintDeeper:   "özet/analoji/örnek",
	HintVoice:    "ses",
	HintExport:   "dışa aktar",
	HintMenu:     "menü",
	HintNavigate: "gezin",
	HintAnswer:   "cevapla",
	HintYes:      "evet",
	HintNo:       "hayır",

	TerminalTooSmall: "Terminal çok küçük\n\nLütfen en az %d x %d olacak şekilde büyütün\n\nŞu an: %d x %d",
}
