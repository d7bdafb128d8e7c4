package enums

type DocumentType string

const (
	DocumentTypeIDCard         DocumentType = "id_card"
	DocumentTypeDriverLicense  DocumentType = "driver_license"
	DocumentTypeProofOfAddress DocumentType = "proof_of_address"
	DocumentTypeOther          DocumentType = "other"
)

func ParseDocumentType(raw string) (DocumentType, bool) {
	switch DocumentType(raw) {
	case DocumentTypeIDCard, DocumentTypeDriverLicense, DocumentTypeProofOfAddress, DocumentTypeOther:
		return DocumentType(raw), true
	default:
		return "", false
	}
}
