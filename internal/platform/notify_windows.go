//go:build windows

package platform

import (
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds the PowerShell that raises a WinRT toast. ToastText02 is
// used without an icon and ToastImageAndText02 with one.
func toastScript(title, body string, opts Options) string {
	kind := "ToastText02"
	icon := strings.TrimSpace(opts.IconPath)
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	lines := []string{
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null`,
		`$t = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::` + kind + `)`,
		`$x = $t.GetElementsByTagName("text")`,
		`$x.Item(0).AppendChild($t.CreateTextNode(` + psQuote(title) + `)) > $null`,
		`$x.Item(1).AppendChild($t.CreateTextNode(` + psQuote(body) + `)) > $null`,
	}
	if icon != "" {
		lines = append(lines, `$t.GetElementsByTagName("image").Item(0).SetAttribute("src", `+psQuote(icon)+`)`)
	}
	lines = append(lines,
		`$n = [Windows.UI.Notifications.ToastNotification]::new($t)`,
		`$n.ExpirationTime = [DateTimeOffset]::Now.AddMilliseconds(`+itoa(opts.timeoutMillis())+`)`,
		`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(`+psQuote(opts.appName())+`).Show($n)`,
	)
	return strings.Join(lines, "; ")
}

// Notify raises a toast in the Windows notification center.
func Notify(title, body string, opts Options) error {
	return exec.Command("powershell.exe", "-NoProfile", "-NonInteractive", "-Command", toastScript(title, body, opts)).Run()
}
