package product

type DraftRepository interface {
	Save(d *Draft)
	Find(id string) (*Draft, bool)
	Delete(id string)
}
