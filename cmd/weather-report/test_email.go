package main

import (
	"errors"

	"github.com/spf13/cobra"

	"daily-weather-image/internal/common/logger"
	"daily-weather-image/internal/models"
)

const (
	sampleWeather = "天气：晴\n温度：12℃\n最高/最低：15℃/8℃\n湿度：65%\n风：东北风2级"
	// sampleLandmark is marked so a test mail is never mistaken for a report.
	sampleLandmark = "西湖断桥（测试）"
)

var errTestEmailFailed = errors.New("test email was not sent, check the mail settings")

var testEmailCmd = &cobra.Command{
	Use:   "test-email",
	Short: "Send a sample text-only report to verify the mail settings",
	Args:  cobra.NoArgs,
	RunE:  runTestEmail,
}

func init() {
	rootCmd.AddCommand(testEmailCmd)
}

func sampleOutcome() models.PipelineOutcome {
	w := models.WeatherReport(sampleWeather)
	l := sampleLandmark
	return models.PipelineOutcome{Weather: &w, Landmark: &l}
}

func runTestEmail(cmd *cobra.Command, _ []string) error {
	a, err := newApp(logger.OutputConsole)
	if err != nil {
		return err
	}
	defer a.Close()

	city := a.cfg.Report.City
	a.log.Info("Sending test email", map[string]interface{}{
		"city":     city,
		"landmark": sampleLandmark,
		"weather":  sampleWeather,
	})

	if !a.notifier.Notify(cmd.Context(), sampleOutcome(), city) {
		return errTestEmailFailed
	}
	a.log.Info("Test email sent, mail settings are correct", nil)
	return nil
}
