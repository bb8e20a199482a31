package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyStartDownloads     = "start_downloads"
	KeyStopAll            = "stop_all"
	KeyStop               = "stop"
	KeyRetry              = "retry"
	KeyOpen               = "open"
	KeyLog                = "log"
	KeySettings           = "settings"
	KeyHistory            = "history"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyOutputDirectory    = "output_directory"
	KeyMaxParallel        = "max_parallel"
	KeyQualityPreset      = "quality_preset"
	KeyFilenameTemplate   = "filename_template"
	KeyKeepHistory        = "keep_history"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeyEnterURLs          = "enter_urls"
	KeySettingsSaved      = "settings_saved"
	KeyDownloadsQueued    = "downloads_queued"
	KeyDownloadCompleted  = "download_completed"
	KeyErrorStoppingJob   = "error_stopping_job"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyNoValidURLs        = "no_valid_urls"
	KeyNoOutputDirectory  = "no_output_directory"
	KeyUpdaterChecking    = "updater_checking"
	KeyUpdaterDownloading = "updater_downloading"
	KeyUpdaterReady       = "updater_ready"
	KeyUpdaterFailed      = "updater_failed"
	KeyExpandingPlaylist  = "expanding_playlist"
	KeyPlaylistFailed     = "playlist_failed"
	KeyHistoryEmpty       = "history_empty"
	KeyPathCopied         = "path_copied"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "VideoDL",
		KeyStartDownloads:     "Start Downloads",
		KeyStopAll:            "Stop All",
		KeyStop:               "Stop",
		KeyRetry:              "Retry",
		KeyOpen:               "Open",
		KeyLog:                "Log",
		KeySettings:           "Settings",
		KeyHistory:            "History",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyOutputDirectory:    "Output Directory",
		KeyMaxParallel:        "Parallel Downloads",
		KeyQualityPreset:      "Quality Preset",
		KeyFilenameTemplate:   "Filename Template",
		KeyKeepHistory:        "Keep Download History",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeyEnterURLs:          "Enter video URLs, one per line",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyDownloadsQueued:    "Downloads queued",
		KeyDownloadCompleted:  "Download completed",
		KeyErrorStoppingJob:   "Error stopping download",
		KeyErrorOpeningFile:   "Error opening file",
		KeyNoValidURLs:        "No valid URLs entered",
		KeyNoOutputDirectory:  "Choose an output directory first",
		KeyUpdaterChecking:    "Checking yt-dlp...",
		KeyUpdaterDownloading: "Fetching yt-dlp...",
		KeyUpdaterReady:       "yt-dlp ready",
		KeyUpdaterFailed:      "yt-dlp unavailable",
		KeyExpandingPlaylist:  "Expanding playlist...",
		KeyPlaylistFailed:     "Playlist expansion failed",
		KeyHistoryEmpty:       "No finished downloads yet",
		KeyPathCopied:         "Path copied to clipboard",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "VideoDL",
		KeyStartDownloads:     "Начать загрузки",
		KeyStopAll:            "Остановить все",
		KeyStop:               "Стоп",
		KeyRetry:              "Повторить",
		KeyOpen:               "Открыть",
		KeyLog:                "Журнал",
		KeySettings:           "Настройки",
		KeyHistory:            "История",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyOutputDirectory:    "Папка загрузки",
		KeyMaxParallel:        "Параллельные загрузки",
		KeyQualityPreset:      "Предустановка качества",
		KeyFilenameTemplate:   "Шаблон имени файла",
		KeyKeepHistory:        "Хранить историю загрузок",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeyEnterURLs:          "Введите URL видео, по одному в строке",
		KeySettingsSaved:      "Настройки успешно сохранены!",
		KeyDownloadsQueued:    "Загрузки добавлены в очередь",
		KeyDownloadCompleted:  "Загрузка завершена",
		KeyErrorStoppingJob:   "Ошибка остановки загрузки",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyNoValidURLs:        "Нет корректных URL",
		KeyNoOutputDirectory:  "Сначала выберите папку загрузки",
		KeyUpdaterChecking:    "Проверка yt-dlp...",
		KeyUpdaterDownloading: "Загрузка yt-dlp...",
		KeyUpdaterReady:       "yt-dlp готов",
		KeyUpdaterFailed:      "yt-dlp недоступен",
		KeyExpandingPlaylist:  "Разбор плейлиста...",
		KeyPlaylistFailed:     "Не удалось разобрать плейлист",
		KeyHistoryEmpty:       "Завершённых загрузок пока нет",
		KeyPathCopied:         "Путь скопирован в буфер обмена",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "VideoDL",
		KeyStartDownloads:     "Iniciar Downloads",
		KeyStopAll:            "Parar Todos",
		KeyStop:               "Parar",
		KeyRetry:              "Repetir",
		KeyOpen:               "Abrir",
		KeyLog:                "Registro",
		KeySettings:           "Configurações",
		KeyHistory:            "Histórico",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyOutputDirectory:    "Diretório de Saída",
		KeyMaxParallel:        "Downloads Paralelos",
		KeyQualityPreset:      "Predefinição de Qualidade",
		KeyFilenameTemplate:   "Modelo de Nome de Arquivo",
		KeyKeepHistory:        "Manter Histórico de Downloads",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Navegar",
		KeyEnterURLs:          "Digite URLs de vídeo, uma por linha",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
		KeyDownloadsQueued:    "Downloads adicionados à fila",
		KeyDownloadCompleted:  "Download concluído",
		KeyErrorStoppingJob:   "Erro ao parar download",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyNoValidURLs:        "Nenhuma URL válida",
		KeyNoOutputDirectory:  "Escolha um diretório de saída primeiro",
		KeyUpdaterChecking:    "Verificando yt-dlp...",
		KeyUpdaterDownloading: "Baixando yt-dlp...",
		KeyUpdaterReady:       "yt-dlp pronto",
		KeyUpdaterFailed:      "yt-dlp indisponível",
		KeyExpandingPlaylist:  "Expandindo playlist...",
		KeyPlaylistFailed:     "Falha ao expandir playlist",
		KeyHistoryEmpty:       "Nenhum download concluído ainda",
		KeyPathCopied:         "Caminho copiado",
	}
}
