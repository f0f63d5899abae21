package cache

func Init() {
	_ = InitUserContactsCache()
}
