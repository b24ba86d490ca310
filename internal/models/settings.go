package models

// Theme задаёт режим оформления
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ColorScheme задаёт основной цвет интерфейса
type ColorScheme string

const (
	ColorIndigo ColorScheme = "indigo"
	ColorPurple ColorScheme = "purple"
	ColorBlue   ColorScheme = "blue"
	ColorGreen  ColorScheme = "green"
	ColorRose   ColorScheme = "rose"
)

// FontSize задаёт базовый размер шрифта
type FontSize string

const (
	FontSmall FontSize = "sm"
	FontBase  FontSize = "base"
	FontLarge FontSize = "lg"
)

// ThemeSettings хранит настройки оформления пользователя
type ThemeSettings struct {
	Theme          Theme       `json:"theme"`
	ColorScheme    ColorScheme `json:"colorScheme"`
	FontSize       FontSize    `json:"fontSize"`
	ReducedMotion  bool        `json:"reducedMotion"`
	RoundedCorners bool        `json:"roundedCorners"`
}

// DefaultThemeSettings возвращает настройки для нового пользователя
func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{
		Theme:          ThemeSystem,
		ColorScheme:    ColorIndigo,
		FontSize:       FontBase,
		ReducedMotion:  false,
		RoundedCorners: true,
	}
}

// Validate проверяет, что все значения входят в допустимые множества
func (s ThemeSettings) Validate() error {
	switch s.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return &ValidationError{Field: "theme", Reason: "must be light, dark or system"}
	}
	switch s.ColorScheme {
	case ColorIndigo, ColorPurple, ColorBlue, ColorGreen, ColorRose:
	default:
		return &ValidationError{Field: "colorScheme", Reason: "unsupported color scheme"}
	}
	switch s.FontSize {
	case FontSmall, FontBase, FontLarge:
	default:
		return &ValidationError{Field: "fontSize", Reason: "must be sm, base or lg"}
	}
	return nil
}

// ThemeSettingsPatch описывает частичное обновление настроек; nil-поля не меняются
type ThemeSettingsPatch struct {
	Theme          *Theme       `json:"theme,omitempty"`
	ColorScheme    *ColorScheme `json:"colorScheme,omitempty"`
	FontSize       *FontSize    `json:"fontSize,omitempty"`
	ReducedMotion  *bool        `json:"reducedMotion,omitempty"`
	RoundedCorners *bool        `json:"roundedCorners,omitempty"`
}

// Apply возвращает копию настроек с применёнными изменениями
func (p ThemeSettingsPatch) Apply(s ThemeSettings) ThemeSettings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.ColorScheme != nil {
		s.ColorScheme = *p.ColorScheme
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.ReducedMotion != nil {
		s.ReducedMotion = *p.ReducedMotion
	}
	if p.RoundedCorners != nil {
		s.RoundedCorners = *p.RoundedCorners
	}
	return s
}

// CSSVariables возвращает CSS-переменные, которые фронтенд выставляет на корневой элемент
func (s ThemeSettings) CSSVariables() map[string]string {
	vars := map[string]string{
		"--color-primary":       "var(--color-" + string(s.ColorScheme) + "-600)",
		"--color-primary-light": "var(--color-" + string(s.ColorScheme) + "-500)",
		"--color-primary-dark":  "var(--color-" + string(s.ColorScheme) + "-700)",
		"--base-font-size":      "16px",
		"--transition-duration": "200ms",
		"--border-radius":       "0.25rem",
	}
	switch s.FontSize {
	case FontSmall:
		vars["--base-font-size"] = "14px"
	case FontLarge:
		vars["--base-font-size"] = "18px"
	}
	if s.ReducedMotion {
		vars["--transition-duration"] = "0s"
	}
	if s.RoundedCorners {
		vars["--border-radius"] = "0.5rem"
	}
	return vars
}
