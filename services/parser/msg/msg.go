package msg

import (
	"strings"

	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/internal/models"
	"github.com/customeros/mailpdf/internal/utils"
)

// Parse reads an Outlook .msg compound file.
func Parse(data []byte) (*models.ParsedEmail, error) {
	streams, err := readContainer(data)
	if err != nil {
		return nil, err
	}
	return FromStreams(streams), nil
}

// FromStreams builds a ParsedEmail from the streams of a .msg file.
func FromStreams(streams Streams) *models.ParsedEmail {
	email := &models.ParsedEmail{
		Format:    enum.EmailFormatMsg,
		Sender:    sender(streams),
		Recipient: recipient(streams),
		Subject:   streams.StringValue(propSubject),
	}

	if text, ok := streams.Text(propBody); ok {
		email.BodyText = utils.StringPtrNonEmpty(text)
	}
	if html, ok := streams.Text(propBodyHTML); ok {
		email.BodyHTML = utils.StringPtrNonEmpty(html)
	}
	if email.BodyHTML == nil {
		email.BodyHTML = htmlFromRTF(streams)
	}

	for _, storage := range streams.Storages(attachStoragePrefix) {
		if att := attachment(streams.Sub(storage)); att != nil {
			email.Attachments = append(email.Attachments, att)
		}
	}
	return email
}

func sender(streams Streams) string {
	name := streams.FirstString(propSenderName, propSentRepresentingName)
	addr := streams.FirstString(propSenderEmail, propSentRepresentingEmail)
	if addr == "" || isExchangeAddress(addr) {
		if smtp := streams.FirstString(propSenderSMTPAddress, propSentRepresentingSMTPAddr); smtp != "" {
			addr = smtp
		}
	}
	return formatAddress(name, addr)
}

// recipient prefers the display-to summary and falls back to the recipient
// storages when a writer omitted it.
func recipient(streams Streams) string {
	if to := streams.StringValue(propDisplayTo); to != "" {
		return to
	}

	var recipients []string
	for _, storage := range streams.Storages(recipientStoragePrefix) {
		sub := streams.Sub(storage)
		addr := sub.FirstString(propSMTPAddress, propEmailAddress)
		if rendered := formatAddress(sub.StringValue(propDisplayName), addr); rendered != "" {
			recipients = append(recipients, rendered)
		}
	}
	return strings.Join(recipients, "; ")
}

// attachment returns nil for attachments without a data stream, such as
// embedded messages stored as sub-storages.
func attachment(streams Streams) *models.Attachment {
	data, ok := streams.Binary(propAttachData)
	if !ok {
		return nil
	}

	name := streams.FirstString(propAttachLongFilename, propAttachFilename, propDisplayName)
	mimeType := streams.StringValue(propAttachMimeTag)
	if name == "" {
		name = "attachment." + utils.GetFileExtensionFromContentType(mimeType)
	}
	return models.NewAttachment(name, mimeType, streams.StringValue(propAttachContentID), data)
}

func htmlFromRTF(streams Streams) *string {
	compressed, ok := streams.Binary(propRTFCompressed)
	if !ok {
		return nil
	}
	rtf, err := DecompressRTF(compressed)
	if err != nil {
		return nil
	}
	html := ExtractHTMLFromRTF(rtf)
	return utils.StringPtrNonEmpty(html)
}
