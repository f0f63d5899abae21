package jwt

/*
Generated using https://mkjwk.org/
*/

var pvtKeyRaw = `
{
    "p": "2VWtBi6Aqym3VrqqymEpPPF4JFBBOs30nzmqNofeOSCSqv5mndnY0rsdvjcIdRLqBVbCpq8lk3g_R7Fqkekzjb2HJLtd4OuXewDSz8RZZguAMHexo2mnqSCZyVVa11lNY-pPvyZeOnlIgETSiL2e-m9d5QN6HobTIdYf-VXLJyk",
    "kty": "RSA",
    "q": "xSoJLFMHRd9WMloeJAATbj_XuXeMAWvlrOJa6s8DSdDhL3DShhQY5XmgaPy-r-pFM3EAYHXWqnKDS-t6-BFhxvU009RXrHhqx0G2uGVwhudiHu-MSzcNzUkKYjk_EjfELf_WpRheEnyCDQoxIKxxCK3VUYBxFdF3THBmTlPFoWs",
    "d": "D1Wli76ElUzqaq7bBP2sjYtxqRIbaHC5X_gxP0TJmOpWn7Zcnru7WpdX57J0W7db-I9EgFkqSyMnKSoa0NjTdBkjcD-_qm-oJ35ykQwWggkXMoK0vtFL5R3GLMWlzzM8maZiSMVMqidgYT3DTSVGVJfSU54x4KFrdb9ZqpvZxOrwxP3gdvAwCvHs1EO0CsjSApmzr9ha1LVIwS1o5rELKtnFD09Uj-b-MYJQtn4EqpW8WZ21aVhXGAJ2znum52GDww54MbL1tKNWv0RxyxW1seko3pnVm1KtCqJ5DSnWTOspaMOf1yrDmX6UgblzC7OooqtKZNmgWfWN0CmRYiDJQQ",
    "e": "AQAB",
    "use": "sig",
    "kid": "sig-1756684800",
    "qi": "Ptl6TjwvxZAH-o5GTuHlQYWR46CVxQmsybgh77w9q6tW0uid6DlyM-TaNRWpqL8uD25eBwyPeg_Dj3h-Se7M2JG0r47DiOKfAALT4mFJBoM2D7L6Aln8dCzig5ZIAZV-b5Ntz3XRvTmIfrb83KEgThFIXeAqu5qHYxTKKCWkAME",
    "dp": "ai6MqU-A958a_tmWZegQcMD81KkNJYDIOh6_RYMeFEUQw1AlrItpfpOC1ZMno6NJCLC5yxwZPLJsIEfS7FTGJkLpyw1rsV8JFERzuqSQlOWbjJJ-DHurOVs_J3l3N21e_SjWK2rAcMsem-SEA-C40lwkwKXxPQbcElT-LCA5b_k",
    "alg": "RS256",
    "dq": "VLrP3mCAC6MC4_ieY1I1B3ggOPALFsFLnpRYBfiYrSw62axejIgues9eBEA5olfHDWhOhSWe7vjvO70ix2CQ6HOQFEh4tQG6wY6X-358cT0WibzgSaKLJ-FvuO5pEGcuw6XilGh4ZPFk4j2zBxuUJ-qsda4A6yNtZUgYbyjJEak",
    "n": "p2Kd_ckYjUghwJvJlklnUmB_xCBBQoVzJx-aqybAoHzTO2T7RW4YfPWz5HiVU48UoinUqcVxQpPL_rCFf47vqpQFLP3HeDYBVAXi_AUY_cQEloJFTzlAOxUeS-N1CRV7LVLizKVTt9ucFRHCuZYQc-WwU-8t1CNO7jY1-m-6cnpFo0yv5axlfG46uF4tlysiub34c-Q0FbNNlC5-H-AOR8rU2i0yOSOcQbn76o58KtMT6comULi4uuau8RWGA8-fmGTJU0wgDI9HqH5SE-_SU4npZwQfoDWQONep69inKyPrHFYsFOP8pATLvngDAPJZrwUJ1iBMNGKju1OxDRcnIw"
}
`

var pubKeyRaw = `
{
    "kty": "RSA",
    "e": "AQAB",
    "use": "sig",
    "kid": "sig-1756684800",
    "alg": "RS256",
    "n": "p2Kd_ckYjUghwJvJlklnUmB_xCBBQoVzJx-aqybAoHzTO2T7RW4YfPWz5HiVU48UoinUqcVxQpPL_rCFf47vqpQFLP3HeDYBVAXi_AUY_cQEloJFTzlAOxUeS-N1CRV7LVLizKVTt9ucFRHCuZYQc-WwU-8t1CNO7jY1-m-6cnpFo0yv5axlfG46uF4tlysiub34c-Q0FbNNlC5-H-AOR8rU2i0yOSOcQbn76o58KtMT6comULi4uuau8RWGA8-fmGTJU0wgDI9HqH5SE-_SU4npZwQfoDWQONep69inKyPrHFYsFOP8pATLvngDAPJZrwUJ1iBMNGKju1OxDRcnIw"
}
`
